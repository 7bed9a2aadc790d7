package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testDatasetJSON = `[
  {"character": "我", "pinyin": "wǒ", "definition": "I, me", "hsk_level": 1, "frequency": 9},
  {"character": "爱", "traditional_character": "愛", "alternate_characters": "愛", "pinyin": "ài", "definition": "love", "hsk_level": 1, "frequency": 29},
  {"character": "猫", "traditional_character": "貓", "alternate_characters": "貓", "pinyin": "māo", "definition": "cat", "hsk_level": 1, "frequency": 30},
  {"character": "学", "traditional_character": "學", "pinyin": "xué", "definition": "learn", "hsk_level": 1, "frequency": 60}
]`

type CLISuite struct {
	suite.Suite
	dataDir string
	dataset string
}

func TestCLI(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupSuite() {
	color.NoColor = true
}

func (s *CLISuite) SetupTest() {
	dir := s.T().TempDir()
	s.dataDir = filepath.Join(dir, "store")
	s.dataset = filepath.Join(dir, "hanzidb.json")
	s.Require().NoError(os.WriteFile(s.dataset, []byte(testDatasetJSON), 0o644))
}

// run はコマンドを実行して標準出力を返す
func (s *CLISuite) run(stdin string, args ...string) (string, error) {
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--data-dir", s.dataDir, "--dataset", s.dataset}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) mustRun(stdin string, args ...string) string {
	out, err := s.run(stdin, args...)
	s.Require().NoError(err, out)
	return out
}

func (s *CLISuite) TestLogFromStdinWithStudy() {
	out := s.mustRun("我爱貓。", "log", "--study", "猫")
	s.Contains(out, "我 爱")
	s.Contains(out, "Known total")

	study := s.mustRun("", "status", "study")
	s.Contains(study, "猫")
	s.Contains(study, "cat")
	s.NotContains(study, "我")

	known := s.mustRun("", "status", "known")
	s.Contains(known, "我")
	s.Contains(known, "爱")
}

func (s *CLISuite) TestLogFromFile() {
	path := filepath.Join(s.T().TempDir(), "article.txt")
	s.Require().NoError(os.WriteFile(path, []byte("我學"), 0o644))

	s.mustRun("", "log", path)

	out := s.mustRun("", "summary")
	s.Contains(out, "Known: 2 / 2500")
	s.Contains(out, "Study: 0")
}

func (s *CLISuite) TestLogTraditionalIsKnown() {
	out := s.mustRun("愛貓學", "log")
	s.Contains(out, "爱 猫 学")

	known := s.mustRun("", "status", "known")
	s.Contains(known, "爱")
	s.Contains(known, "猫")
	s.Contains(known, "学")
	s.Contains(s.mustRun("", "status", "study"), "none")

	// 繁体字で指定しても study に回る
	s.mustRun("我貓", "log", "--study", "貓")
	study := s.mustRun("", "status", "study")
	s.Contains(study, "猫")
	s.NotContains(study, "我")
}

func (s *CLISuite) TestLogWithoutChinese() {
	out := s.mustRun("hello world", "log")
	s.NotContains(out, "Known total")

	events := s.mustRun("", "history")
	s.Contains(events, "none")
}

func (s *CLISuite) TestLogEmptyInput() {
	_, err := s.run("   ", "log")
	s.Error(err)
}

func (s *CLISuite) TestMarkCanonicalizes() {
	out := s.mustRun("", "mark", "貓", "known")
	s.Contains(out, "猫")
	s.Contains(out, "known")

	list := s.mustRun("", "status")
	s.Contains(list, "猫")
	s.NotContains(list, "貓")
}

func (s *CLISuite) TestMarkRejectsInvalidInput() {
	_, err := s.run("", "mark", "我", "maybe")
	s.Error(err)

	_, err = s.run("", "mark", "ab", "known")
	s.Error(err)

	_, err = s.run("", "status", "unknown")
	s.Error(err)
}

func (s *CLISuite) TestHistoryNewestFirst() {
	s.mustRun("我", "log")
	s.mustRun("猫", "log")

	out := s.mustRun("", "history")
	s.Contains(out, "History - 2")
	s.Less(strings.Index(out, "猫"), strings.Index(out, "我"))

	limited := s.mustRun("", "history", "-n", "1")
	s.Contains(limited, "History - 1")
}

func (s *CLISuite) TestReset() {
	s.mustRun("我爱", "log")

	aborted := s.mustRun("n\n", "reset")
	s.Contains(aborted, "Aborted.")
	s.Contains(s.mustRun("", "status"), "我")

	confirmed := s.mustRun("", "reset", "--yes")
	s.Contains(confirmed, "All progress deleted.")
	s.Contains(s.mustRun("", "status"), "none")
}

func (s *CLISuite) TestDevicesAreSeparate() {
	s.mustRun("我", "log", "--device", "tablet")

	s.Contains(s.mustRun("", "status", "--device", "tablet"), "我")
	s.Contains(s.mustRun("", "status"), "none")

	_, err := s.run("", "status", "--device", "../escape")
	s.Error(err)
}

func (s *CLISuite) TestMissingDataset() {
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--data-dir", s.dataDir, "--dataset", filepath.Join(s.T().TempDir(), "none.json"), "summary"})
	s.Error(cmd.Execute())
}

func TestConvertCommand(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	input := filepath.Join(dir, "hanzidb.csv")
	src := "frequency_rank,character,pinyin,definition,hsk_level,traditional_character,alternate_characters\n" +
		"29,爱,ài,love,1,愛,\n" +
		"9,我,wǒ,I,1,,\n"
	require.NoError(t, os.WriteFile(input, []byte(src), 0o644))

	jsonPath := filepath.Join(dir, "out.json")
	csvPath := filepath.Join(dir, "out.csv")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"convert", "--input", input, "--output-json", jsonPath, "--output-csv", csvPath})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Converted 2 characters")

	js, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"traditional_character": "愛"`)

	csvOut, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvOut), "frequency_rank,"))
}

func TestConvertCommandRequiresFlags(t *testing.T) {
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"convert", "--input", "x.csv"})
	assert.Error(t, cmd.Execute())
}
