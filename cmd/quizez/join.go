package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizez/pkg/client"
	"quizez/pkg/quiz"
	"quizez/pkg/transport"
	"quizez/pkg/wire"
)

var joinCmd = &cobra.Command{
	Use:   "join <session> <name>",
	Short: "Join a session as a participant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(true)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		socket, err := transport.NewSocket(cfg.Client.ServerURL, log)
		if err != nil {
			return err
		}
		c := client.NewClient(socket, log)

		failed := make(chan error, 1)
		p := &participantSession{
			client:  c,
			log:     log,
			session: args[0],
			name:    args[1],
			failed:  failed,
		}
		c.SetDelegate(p)

		if err := c.Connect(cfg.Client.ConnectTimeout, func() {
			failed <- fmt.Errorf("could not reach %s", cfg.Client.ServerURL)
		}); err != nil {
			return err
		}

		go func() { failed <- p.commandLoop(os.Stdin) }()
		err = <-failed
		if c.Connected() {
			_ = c.Disconnect()
		}
		return err
	},
}

// participantSession drives the student side: join on connect, print what
// the session pushes, submit answers and feedback typed on the terminal.
type participantSession struct {
	client.NoopDelegate

	client  *client.Client
	log     *zap.Logger
	session string
	name    string
	failed  chan error

	mu   sync.Mutex
	live *wire.NextQuestion
}

func (p *participantSession) OnConnected() {
	if err := p.client.JoinSession(p.session, p.name); err != nil {
		p.failed <- err
	}
}

func (p *participantSession) OnDisconnected(reason string) {
	p.failed <- fmt.Errorf("connection lost: %s", reason)
}

func (p *participantSession) OnSessionJoined(joined wire.UserJoined, err error) {
	if err != nil {
		p.failed <- err
		return
	}
	if joined.Name == p.name {
		fmt.Printf("joined session %s\n", joined.Session)
		fmt.Println("commands: answer <choice|text> | feedback <0-4> [message] | quit")
		return
	}
	fmt.Printf("%s joined\n", joined.Name)
}

func (p *participantSession) OnUserKicked(kicked wire.KickedUser, err error) {
	if err != nil {
		return
	}
	if kicked.Name == p.name {
		p.failed <- fmt.Errorf("kicked from session %s", kicked.Session)
		return
	}
	fmt.Printf("%s was kicked\n", kicked.Name)
}

func (p *participantSession) OnSessionStarted(err error) {
	if err == nil {
		fmt.Println("quiz started")
	}
}

func (p *participantSession) OnNextQuestion(next wire.NextQuestion, err error) {
	if err != nil {
		p.log.Warn("bad question event", zap.Error(err))
		return
	}
	p.mu.Lock()
	p.live = &next
	p.mu.Unlock()

	fmt.Printf("question %d (%ds): %s\n", next.Index, next.Question.TimeLimit, next.Question.Text)
	if mc, ok := next.Question.Body.(quiz.MultipleChoiceBody); ok {
		for i, choice := range mc.Choices {
			fmt.Printf("  %d: %s\n", i, choice.Text)
		}
	}
}

func (p *participantSession) OnResponseSubmitted(graded wire.QuestionResponseSubmitted, err error) {
	if err != nil {
		fmt.Printf("answer rejected: %v\n", err)
		return
	}
	fmt.Printf("scored %d points\n", graded.Points)
	if graded.FirstCorrect {
		fmt.Println("first correct answer!")
	}
}

func (p *participantSession) OnHintReceived(hint wire.HintReceived, err error) {
	if err != nil {
		return
	}
	fmt.Printf("hint for question %d: %s\n", hint.Question, hint.Hint)
}

func (p *participantSession) OnFeedbackSubmitted(err error) {
	if err != nil {
		fmt.Printf("feedback rejected: %v\n", err)
		return
	}
	fmt.Println("feedback sent")
}

func (p *participantSession) OnSessionEnded(err error) {
	if err == nil {
		p.failed <- nil
	}
}

func (p *participantSession) answer(text string) error {
	p.mu.Lock()
	live := p.live
	p.mu.Unlock()
	if live == nil {
		return fmt.Errorf("no question is live")
	}

	var body quiz.ResponseBody
	switch live.Question.Body.(type) {
	case quiz.MultipleChoiceBody:
		choice, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("answer a multiple choice question with a choice number")
		}
		body = quiz.ChoiceResponse{Choice: choice}
	default:
		body = quiz.TextResponse{Text: text}
	}
	response := quiz.Response{Submitter: p.name, Body: body}
	return p.client.SubmitQuestionResponse(live.Index, p.name, response)
}

func (p *participantSession) feedback(fields []string) error {
	p.mu.Lock()
	live := p.live
	p.mu.Unlock()
	if live == nil {
		return fmt.Errorf("no question is live")
	}

	rating, err := strconv.Atoi(fields[0])
	if err != nil || !quiz.Rating(rating).Known() {
		return fmt.Errorf("rating must be between 0 and 4")
	}
	fb := quiz.Feedback{Rating: quiz.Rating(rating), Message: strings.Join(fields[1:], " ")}
	return p.client.SubmitQuestionFeedback(p.name, live.Index, fb)
}

func (p *participantSession) commandLoop(in *os.File) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "answer":
			if len(fields) < 2 {
				fmt.Println("usage: answer <choice|text>")
				continue
			}
			err = p.answer(strings.Join(fields[1:], " "))
		case "feedback":
			if len(fields) < 2 {
				fmt.Println("usage: feedback <0-4> [message]")
				continue
			}
			err = p.feedback(fields[1:])
		case "quit":
			return nil
		default:
			fmt.Println("commands: answer <choice|text> | feedback <0-4> [message] | quit")
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}
