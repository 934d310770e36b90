package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/service"
	"mcq-quiz/internal/util"
	"mcq-quiz/internal/validation"
)

// errQuit ends the game loop without an error exit.
var errQuit = errors.New("quit")

type player struct {
	in        *bufio.Scanner
	out       io.Writer
	source    domain.QuestionSource
	validator *validation.Validator
	now       func() time.Time
}

func newPlayer(in io.Reader, out io.Writer, source domain.QuestionSource, quizCfg config.QuizConfig) *player {
	return &player{
		in:        bufio.NewScanner(in),
		out:       out,
		source:    source,
		validator: validation.NewValidator(quizCfg),
		now:       time.Now,
	}
}

// run plays quizzes until the user quits or input ends. topic and count
// seed the first round only.
func (p *player) run(ctx context.Context, topic string, count int) error {
	sess := domain.NewQuizSession(util.NewULID(), p.now())
	for {
		var err error
		sess, err = p.round(ctx, sess, topic, count)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		topic, count = "", 0

		sess = sess.Reset(p.now())
	}
}

func (p *player) round(ctx context.Context, sess domain.QuizSession, topic string, count int) (domain.QuizSession, error) {
	topic, count, err := p.askTopic(topic, count)
	if err != nil {
		return sess, err
	}

	fmt.Fprintf(p.out, "Generating %d questions about %q...\n", count, topic)
	sess = service.StartSession(ctx, p.source, sess, topic, count, p.now())
	if ctx.Err() != nil {
		return sess, errQuit
	}

	if sess.Status() == domain.StatusUnavailable {
		fmt.Fprintln(p.out, sess.Notice)
		return sess, p.askHome()
	}

	for sess.Status() == domain.StatusInProgress {
		sess, err = p.askQuestion(sess)
		if err != nil {
			return sess, err
		}
	}

	p.printScorecard(sess)
	return sess, p.askHome()
}

func (p *player) askTopic(topic string, count int) (string, int, error) {
	for {
		if strings.TrimSpace(topic) == "" {
			line, err := p.prompt("Quiz topic: ")
			if err != nil {
				return "", 0, err
			}
			topic = line
		}
		if count == 0 {
			line, err := p.prompt("Number of questions: ")
			if err != nil {
				return "", 0, err
			}
			n, convErr := strconv.Atoi(line)
			if convErr != nil {
				fmt.Fprintln(p.out, "Please enter a whole number.")
				continue
			}
			count = n
		}

		topic = strings.TrimSpace(topic)
		if errs := p.validator.ValidateStartQuizRequest(topic, count, ""); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(p.out, e.Message)
				if e.Field == "topic" {
					topic = ""
				} else {
					count = 0
				}
			}
			continue
		}
		return topic, count, nil
	}
}

func (p *player) askQuestion(sess domain.QuizSession) (domain.QuizSession, error) {
	q, _ := sess.CurrentQuestion()
	fmt.Fprintf(p.out, "\nQuestion %d of %d\n%s\n", sess.CurrentIndex+1, len(sess.Questions), q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		line, err := p.prompt("Your answer: ")
		if err != nil {
			return sess, err
		}

		next, outcome, err := sess.SubmitAnswer(selectOption(q, line), p.now())
		if errors.Is(err, domain.ErrNoAnswerSelected) {
			fmt.Fprintf(p.out, "Select an option from 1 to %d.\n", len(q.Options))
			continue
		}
		if err != nil {
			return sess, err
		}

		if outcome.Correct {
			fmt.Fprintln(p.out, "Correct!")
		} else {
			fmt.Fprintf(p.out, "Wrong! The correct answer is: %s\n", outcome.CorrectAnswer)
		}
		return next, nil
	}
}

// selectOption maps an option number to its text. Anything else selects nothing.
func selectOption(q domain.QuestionRecord, line string) string {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(q.Options) {
		return ""
	}
	return q.Options[n-1]
}

func (p *player) printScorecard(sess domain.QuizSession) {
	card, err := sess.Summary()
	if err != nil {
		return
	}
	fmt.Fprintf(p.out, "\nQuiz completed! Your score: %d/%d\n", card.Score, card.Total)
	if card.Perfect {
		fmt.Fprintln(p.out, "Perfect score, congratulations!")
	}
	fmt.Fprintln(p.out, "\nReview:")
	for _, item := range card.Review {
		fmt.Fprintf(p.out, "%d. %s\n   Your answer: %s\n   Correct answer: %s\n", item.Number, item.Question, item.UserAnswer, item.CorrectAnswer)
		if !item.AnswerListed {
			fmt.Fprintln(p.out, "   (the correct answer was not one of the options)")
		}
	}
}

func (p *player) askHome() error {
	for {
		line, err := p.prompt("\n[h] return home, [q] quit: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(line) {
		case "h", "home", "":
			return nil
		case "q", "quit":
			return errQuit
		}
	}
}

func (p *player) prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}
