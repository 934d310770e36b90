package quizgen

import (
	"regexp"
	"strings"

	"mcq-quiz/internal/domain"
)

const (
	// question line + options + answer line
	minBlockLines   = 1 + domain.OptionsPerQuestion + 1
	answerSeparator = ": "
)

// One or more blank (or whitespace-only) lines end a question block.
var blockSeparator = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

// ParseResult is the outcome of parsing one model response.
type ParseResult struct {
	Questions []domain.QuestionRecord
	// Dropped counts blocks that did not have the expected shape.
	Dropped int
	// Unlisted counts accepted questions whose correct answer is not among the options.
	Unlisted int
}

// ParseQuestions splits a free-text model response into question records.
//
// The expected layout per block is a question line, four option lines and a
// "Correct Answer: <text>" line. Blocks with fewer lines, without the ": "
// separator on the answer line, or with an empty question or answer are
// dropped. Lines after the answer line are ignored.
func ParseQuestions(raw string) ParseResult {
	result := ParseResult{Questions: []domain.QuestionRecord{}}

	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if text == "" {
		return result
	}

	for _, block := range blockSeparator.Split(text, -1) {
		q, ok := parseBlock(block)
		if !ok {
			result.Dropped++
			continue
		}
		if !q.HasListedAnswer() {
			result.Unlisted++
		}
		result.Questions = append(result.Questions, q)
	}
	return result
}

func parseBlock(block string) (domain.QuestionRecord, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) < minBlockLines {
		return domain.QuestionRecord{}, false
	}

	question := strings.TrimSpace(lines[0])
	options := make([]string, 0, domain.OptionsPerQuestion)
	for _, line := range lines[1 : 1+domain.OptionsPerQuestion] {
		options = append(options, strings.TrimSpace(line))
	}

	answerLine := lines[1+domain.OptionsPerQuestion]
	_, answer, found := strings.Cut(answerLine, answerSeparator)
	answer = strings.TrimSpace(answer)
	if !found || question == "" || answer == "" {
		return domain.QuestionRecord{}, false
	}

	return domain.QuestionRecord{
		Question:      question,
		Options:       options,
		CorrectAnswer: answer,
	}, true
}
