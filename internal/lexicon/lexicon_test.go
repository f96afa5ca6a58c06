package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	tables := Default()

	assert.Equal(t, 473, tables.SurnameCount())
	assert.True(t, tables.HasSurnamePrefix("张三丰"))
	assert.True(t, tables.HasSurnamePrefix("欧阳修"), "double surnames are surname prefixes too")
	assert.False(t, tables.HasSurnamePrefix("计算机"))
	assert.False(t, tables.HasSurnamePrefix("中华人"))

	assert.True(t, tables.HasDoubleSurnamePrefix("司马相如"))
	assert.False(t, tables.HasDoubleSurnamePrefix("张三丰"))

	assert.True(t, tables.HasListSuffix("中国省份列表"))
	assert.True(t, tables.HasListSuffix("度量衡对照表"))
	assert.False(t, tables.HasListSuffix("列表页"))

	for _, r := range "零一二三四五六七八九十百千万亿廿年代月日" {
		assert.True(t, tables.InDateAlphabet(r), "rune %q", r)
	}
	assert.False(t, tables.InDateAlphabet('时'))

	fixed, ok := tables.PinyinFix("n")
	assert.True(t, ok)
	assert.Equal(t, "en", fixed)
	_, ok = tables.PinyinFix("zhong1")
	assert.False(t, ok)

	assert.Positive(t, tables.PhraseCount())
	syl, n := tables.MatchPhrase([]rune("银行卡"))
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"yin2", "hang2"}, syl)
	_, n = tables.MatchPhrase([]rune("银"))
	assert.Zero(t, n)
}

func TestParse_PhrasesLongestMatch(t *testing.T) {
	t.Parallel()

	tables, err := Parse([]byte(`
surnames: [王]
date_alphabet: 一
phrases:
  长江: chang2 jiang1
  长江大桥: chang2 jiang1 da4 qiao2
`))
	require.NoError(t, err)
	assert.Equal(t, 2, tables.PhraseCount())

	syl, n := tables.MatchPhrase([]rune("长江大桥通车"))
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"chang2", "jiang1", "da4", "qiao2"}, syl)

	syl, n = tables.MatchPhrase([]rune("长江大"))
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"chang2", "jiang1"}, syl)

	_, n = tables.MatchPhrase([]rune("大桥"))
	assert.Zero(t, n)
	_, n = tables.MatchPhrase(nil)
	assert.Zero(t, n)
}

func TestParse_Custom(t *testing.T) {
	t.Parallel()

	tables, err := Parse([]byte(`
surnames: [王, 王]
double_surnames: [欧阳]
list_suffixes: [一览]
date_alphabet: 一二
pinyin_fixes:
  m: mu
`))
	require.NoError(t, err)

	assert.Equal(t, 2, tables.SurnameCount(), "duplicates are dropped and double surnames merged")
	assert.True(t, tables.HasListSuffix("车站一览"))
	assert.False(t, tables.HasListSuffix("车站列表"))
	fixed, ok := tables.PinyinFix("m")
	require.True(t, ok)
	assert.Equal(t, "mu", fixed)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "no surnames", input: "date_alphabet: 一\n"},
		{name: "no date alphabet", input: "surnames: [王]\n"},
		{name: "empty entry", input: "surnames: [王, '']\ndate_alphabet: 一\n"},
		{name: "bad double surname", input: "surnames: [王]\ndouble_surnames: [欧阳修]\ndate_alphabet: 一\n"},
		{name: "empty fix", input: "surnames: [王]\ndate_alphabet: 一\npinyin_fixes:\n  n: ''\n"},
		{name: "phrase syllable count", input: "surnames: [王]\ndate_alphabet: 一\nphrases:\n  银行: yin2\n"},
		{name: "single character phrase", input: "surnames: [王]\ndate_alphabet: 一\nphrases:\n  行: hang2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestParse_BadYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("surnames: [unterminated"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tables, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().SurnameCount(), tables.SurnameCount())

	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("surnames: [李]\ndate_alphabet: 年\n"), 0o644))

	tables, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tables.SurnameCount())
	assert.False(t, tables.HasListSuffix("中国列表"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
