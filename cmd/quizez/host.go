package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizez/internal/bank"
	"quizez/pkg/client"
	"quizez/pkg/quiz"
	"quizez/pkg/transport"
	"quizez/pkg/wire"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Create a session, load the question bank and run a quiz",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(true)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		store, err := bank.Open(cfg.Bank)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		questions, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return fmt.Errorf("question bank is empty, add questions with 'quizez bank add' first")
		}

		socket, err := transport.NewSocket(cfg.Client.ServerURL, log)
		if err != nil {
			return err
		}
		c := client.NewClient(socket, log)

		failed := make(chan error, 1)
		h := &hostSession{client: c, log: log, questions: questions, failed: failed}
		c.SetDelegate(h)

		if err := c.Connect(cfg.Client.ConnectTimeout, func() {
			failed <- fmt.Errorf("could not reach %s", cfg.Client.ServerURL)
		}); err != nil {
			return err
		}

		go func() { failed <- h.commandLoop(os.Stdin) }()
		err = <-failed
		if c.Connected() {
			_ = c.Disconnect()
		}
		return err
	},
}

// hostSession drives the owner side of a quiz: it creates the session as
// soon as the socket is up, uploads the bank, then takes commands from the
// terminal.
type hostSession struct {
	client.NoopDelegate

	client    *client.Client
	log       *zap.Logger
	questions []quiz.Question
	failed    chan error
}

func (h *hostSession) OnConnected() {
	if err := h.client.CreateSession(); err != nil {
		h.failed <- err
	}
}

func (h *hostSession) OnDisconnected(reason string) {
	h.failed <- fmt.Errorf("connection lost: %s", reason)
}

func (h *hostSession) OnSessionCreated(created wire.CreatedSession, err error) {
	if err != nil {
		h.failed <- err
		return
	}
	fmt.Printf("session code: %s\n", created.Session)
	for _, q := range h.questions {
		if err := h.client.AddQuestion(q); err != nil {
			h.failed <- err
			return
		}
	}
	fmt.Println("commands: start | next | hint <question> <text> | kick <name> | end | quit")
}

func (h *hostSession) OnQuestionAdded(err error) {
	if err != nil {
		h.log.Warn("question rejected", zap.Error(err))
	}
}

func (h *hostSession) OnSessionJoined(joined wire.UserJoined, err error) {
	if err != nil {
		return
	}
	fmt.Printf("%s joined\n", joined.Name)
}

func (h *hostSession) OnUserDisconnected(gone wire.UserDisconnected, err error) {
	if err != nil {
		return
	}
	fmt.Printf("%s disconnected\n", gone.Name)
}

func (h *hostSession) OnResponseAdded(added wire.QuestionResponseAdded, err error) {
	if err != nil {
		h.log.Warn("bad response event", zap.Error(err))
		return
	}
	fmt.Printf("%s answered %q for %d points (%d%% gave this answer)\n",
		added.User, added.Response, added.Points, added.RelativeFrequency)
	if added.FirstCorrect == added.User {
		fmt.Printf("%s was first to answer correctly\n", added.User)
	}
}

func (h *hostSession) OnFeedbackReceived(fb wire.FeedbackSubmitted, err error) {
	if err != nil {
		return
	}
	fmt.Printf("feedback on question %d from %s: %s %q\n",
		fb.Question, fb.User, fb.Feedback.Rating, fb.Feedback.Message)
}

func (h *hostSession) OnSessionEnded(err error) {
	if err != nil {
		h.log.Warn("end session failed", zap.Error(err))
		return
	}
	fmt.Println("session ended")
}

func (h *hostSession) commandLoop(in *os.File) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "start":
			err = h.client.StartSession()
		case "next":
			err = h.client.PushNextQuestion()
		case "hint":
			if len(fields) < 3 {
				fmt.Println("usage: hint <question> <text>")
				continue
			}
			var q int
			if q, err = strconv.Atoi(fields[1]); err == nil {
				err = h.client.SendQuestionHint(q, strings.Join(fields[2:], " "))
			}
		case "kick":
			if len(fields) != 2 {
				fmt.Println("usage: kick <name>")
				continue
			}
			err = h.client.KickUser(fields[1])
		case "end":
			err = h.client.EndSession()
		case "quit":
			return nil
		default:
			fmt.Println("commands: start | next | hint <question> <text> | kick <name> | end | quit")
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}
