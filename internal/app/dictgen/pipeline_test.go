package dictgen

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
	"github.com/heartmarshall/zhwiki-pinyin/internal/filter"
	"github.com/heartmarshall/zhwiki-pinyin/internal/lexicon"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type mockNormalizer struct {
	mapping map[string]string
	failOn  string
}

func (m *mockNormalizer) Normalize(text string) (string, error) {
	if m.failOn != "" && text == m.failOn {
		return "", errors.New("opencc: broken dictionary")
	}
	if out, ok := m.mapping[text]; ok {
		return out, nil
	}
	return text, nil
}

// mockTranscriber echoes unknown words, like an engine with no data for them.
type mockTranscriber map[string]string

func (m mockTranscriber) Transcribe(text string) string {
	if p, ok := m[text]; ok {
		return p
	}
	return text
}

type mockWriter struct {
	records  []domain.Record
	flushes  int
	writeErr error
	flushErr error
}

func (m *mockWriter) Write(_ context.Context, rec domain.Record) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockWriter) Flush(_ context.Context) error {
	m.flushes++
	return m.flushErr
}

var knownPinyin = mockTranscriber{
	"计算机": "ji4 suan4 ji1",
	"中国":  "zhong1 guo2",
	"数学":  "shu4 xue2",
	"物理":  "wu4 li3",
	"化学":  "hua4 xue2",
	"计算":  "ji4 suan4",
	"未知词汇": "wei4 zhi1 ci2 hui4",
	"张三":   "zhang1 san1",
}

func newTestPipeline(t *testing.T, norm Normalizer, out RecordWriter, cfg Config) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if norm == nil {
		norm = &mockNormalizer{}
	}
	f := filter.New(lexicon.Default())
	return NewPipeline(logger, norm, f, knownPinyin, out, cfg), &buf
}

func input(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// logEntries decodes JSON log lines with the given message.
func logEntries(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		if m["msg"] == msg {
			out = append(out, m)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRun_EndToEnd(t *testing.T) {
	out := &mockWriter{}
	p, logs := newTestPipeline(t, nil, out, Config{})

	res, err := p.Run(context.Background(), input("计算机", "张三丰", "中国列表", "计算机"))
	require.NoError(t, err)

	require.Len(t, out.records, 1)
	assert.Equal(t, domain.Record{Word: "计算机", Pinyin: "ji4 suan4 ji1"}, out.records[0])
	assert.Equal(t, "计算机\tji4 suan4 ji1", out.records[0].String())

	assert.Equal(t, 4, res.Lines)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Rejected[filter.ReasonSurname])
	assert.Equal(t, 1, res.Rejected[filter.ReasonListPage])
	// The repeated title extends the cursor and is dropped as a duplicate.
	assert.Equal(t, 1, res.Rejected[filter.ReasonDuplicate])
	assert.Equal(t, 3, res.RejectedTotal())
	assert.Equal(t, 1, out.flushes)

	final := logEntries(t, logs, "words generated")
	require.Len(t, final, 1)
	assert.EqualValues(t, 1, final[0]["count"])
}

func TestRun_TwoCharacterNameMovesCursor(t *testing.T) {
	out := &mockWriter{}
	p, _ := newTestPipeline(t, nil, out, Config{})

	// The surname rule only covers three-character titles, so 张三 is
	// accepted and becomes the cursor; the repeated 计算机 no longer
	// extends the cursor and is emitted again.
	res, err := p.Run(context.Background(), input("计算机", "张三", "中国列表", "计算机"))
	require.NoError(t, err)

	words := make([]string, 0, len(out.records))
	for _, r := range out.records {
		words = append(words, r.Word)
	}
	assert.Equal(t, []string{"计算机", "张三", "计算机"}, words)
	assert.Equal(t, 1, res.Rejected[filter.ReasonListPage])
}

func TestRun_FinalCountLoggedWhenEmpty(t *testing.T) {
	out := &mockWriter{}
	p, logs := newTestPipeline(t, nil, out, Config{})

	res, err := p.Run(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, res.Accepted)
	assert.Empty(t, out.records)

	final := logEntries(t, logs, "words generated")
	require.Len(t, final, 1)
	assert.EqualValues(t, 0, final[0]["count"])
}

func TestRun_FinalCountSurvivesQuietLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
	out := &mockWriter{}
	p := NewPipeline(logger, &mockNormalizer{}, filter.New(lexicon.Default()), knownPinyin, out, Config{ProgressEvery: 1})

	_, err := p.Run(context.Background(), input("计算机", "中国", "未知的词"))
	require.NoError(t, err)

	assert.Empty(t, logEntries(t, &buf, "progress"))
	assert.Empty(t, logEntries(t, &buf, "failed to convert to pinyin, ignoring"))
	final := logEntries(t, &buf, "words generated")
	require.Len(t, final, 1)
	assert.EqualValues(t, 2, final[0]["count"])
}

func TestRun_ConflictDroppedAndCursorKept(t *testing.T) {
	out := &mockWriter{}
	p, logs := newTestPipeline(t, nil, out, Config{})

	// 未知词 has no transcription; 未知词汇 must still be compared against
	// the cursor 中国, not against the dropped title.
	res, err := p.Run(context.Background(), input("中国", "未知词", "未知词汇"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Conflicts)
	require.Len(t, out.records, 2)
	assert.Equal(t, "中国", out.records[0].Word)
	assert.Equal(t, "未知词汇", out.records[1].Word)

	conflicts := logEntries(t, logs, "failed to convert to pinyin, ignoring")
	require.Len(t, conflicts, 1)
	assert.Equal(t, "未知词", conflicts[0]["title"])
}

func TestRun_RejectionDoesNotMoveCursor(t *testing.T) {
	out := &mockWriter{}
	p, _ := newTestPipeline(t, nil, out, Config{})

	// 计算机 is accepted; 张三丰 is rejected and must not become the cursor,
	// so 计算机器 is still recognized as an extension of 计算机.
	res, err := p.Run(context.Background(), input("计算机", "张三丰", "计算机器"))
	require.NoError(t, err)

	assert.Len(t, out.records, 1)
	assert.Equal(t, 1, res.Rejected[filter.ReasonDuplicate])
}

func TestRun_ShortCursorDoesNotSuppress(t *testing.T) {
	out := &mockWriter{}
	p, _ := newTestPipeline(t, nil, out, Config{})

	_, err := p.Run(context.Background(), input("计算", "计算机"))
	require.NoError(t, err)

	require.Len(t, out.records, 2)
	assert.Equal(t, "计算", out.records[0].Word)
	assert.Equal(t, "计算机", out.records[1].Word)
}

func TestRun_TrimsAndNormalizes(t *testing.T) {
	out := &mockWriter{}
	norm := &mockNormalizer{mapping: map[string]string{"計算機": "计算机"}}
	p, _ := newTestPipeline(t, norm, out, Config{})

	_, err := p.Run(context.Background(), input("\ufeff  計算機\t", "", "物理 "))
	require.NoError(t, err)

	require.Len(t, out.records, 2)
	assert.Equal(t, "计算机", out.records[0].Word)
	assert.Equal(t, "物理", out.records[1].Word)
}

func TestRun_ProgressEvery(t *testing.T) {
	out := &mockWriter{}
	p, logs := newTestPipeline(t, nil, out, Config{ProgressEvery: 2})

	// Distinct, non-prefix titles so every line is accepted.
	res, err := p.Run(context.Background(), input("中国", "数学", "物理", "化学", "计算机"))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Accepted)

	progress := logEntries(t, logs, "progress")
	require.Len(t, progress, 2)
	assert.EqualValues(t, 2, progress[0]["count"])
	assert.EqualValues(t, 4, progress[1]["count"])

	final := logEntries(t, logs, "words generated")
	require.Len(t, final, 1)
	assert.EqualValues(t, 5, final[0]["count"])
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	out := &mockWriter{}
	p, _ := newTestPipeline(t, nil, out, Config{DryRun: true})

	res, err := p.Run(context.Background(), input("中国", "数学"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Accepted)
	assert.Empty(t, out.records)
	assert.Zero(t, out.flushes)
}

func TestRun_NormalizerErrorIsFatal(t *testing.T) {
	out := &mockWriter{}
	p, logs := newTestPipeline(t, &mockNormalizer{failOn: "数学"}, out, Config{})

	_, err := p.Run(context.Background(), input("中国", "数学", "物理"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Len(t, out.records, 1)
	assert.Empty(t, logEntries(t, logs, "words generated"))
}

func TestRun_WriterErrors(t *testing.T) {
	t.Run("write", func(t *testing.T) {
		p, _ := newTestPipeline(t, nil, &mockWriter{writeErr: errors.New("disk full")}, Config{})
		_, err := p.Run(context.Background(), input("中国"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
	t.Run("flush", func(t *testing.T) {
		p, _ := newTestPipeline(t, nil, &mockWriter{flushErr: errors.New("broken pipe")}, Config{})
		_, err := p.Run(context.Background(), input("中国"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken pipe")
	})
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &mockWriter{}
	p, _ := newTestPipeline(t, nil, out, Config{})

	_, err := p.Run(ctx, input("中国"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.records)
}

func TestMultiWriter(t *testing.T) {
	a, b := &mockWriter{}, &mockWriter{}
	mw := MultiWriter{a, b}
	rec := domain.Record{Word: "中国", Pinyin: "zhong1 guo2"}

	require.NoError(t, mw.Write(context.Background(), rec))
	require.NoError(t, mw.Flush(context.Background()))

	assert.Equal(t, []domain.Record{rec}, a.records)
	assert.Equal(t, []domain.Record{rec}, b.records)
	assert.Equal(t, 1, a.flushes)
	assert.Equal(t, 1, b.flushes)

	failing := MultiWriter{&mockWriter{writeErr: errors.New("boom")}, b}
	require.Error(t, failing.Write(context.Background(), rec))
	assert.Len(t, b.records, 1)
}
