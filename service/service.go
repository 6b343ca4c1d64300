package service

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/dialogs/firebase-messaging/pkg/auth"
	"github.com/dialogs/firebase-messaging/pkg/fcm"
	"github.com/dialogs/firebase-messaging/pkg/metric"
	"github.com/dialogs/firebase-messaging/pkg/rest"
	"github.com/dialogs/firebase-messaging/pkg/topic"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Service executes one-shot messaging and topic-management commands for the
// cli.
type Service struct {
	logger   *zap.Logger
	messages *fcm.Client
	topics   *topic.Client
}

func New(cfg *viper.Viper, logger *zap.Logger) (*Service, error) {

	c, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	serviceAccount, err := ioutil.ReadFile(c.ServiceAccount)
	if err != nil {
		return nil, errors.Wrap(err, "service account")
	}

	account, err := auth.NewServiceAccount(serviceAccount)
	if err != nil {
		return nil, err
	}

	projectID := c.ProjectID
	if len(projectID) == 0 {
		projectID = account.ProjectID()
	}
	if len(projectID) == 0 {
		return nil, errors.New("invalid `project-id`")
	}

	svcMetric := metric.New()

	sendMetric, err := svcMetric.GetAPIMetrics("send", projectID)
	if err != nil {
		return nil, err
	}

	topicsMetric, err := svcMetric.GetAPIMetrics("topics", projectID)
	if err != nil {
		return nil, err
	}

	doer := &http.Client{Timeout: c.SendTimeout}

	return &Service{
		logger: logger,
		messages: fcm.New(
			rest.New(account,
				rest.WithDoer(doer),
				rest.WithLogger(logger),
				rest.WithMetric(sendMetric)),
			projectID),
		topics: topic.New(
			rest.New(account,
				rest.WithDoer(doer),
				rest.WithLogger(logger),
				rest.WithMetric(topicsMetric))),
	}, nil
}

// Send delivers the message read from a json file.
func (s *Service) Send(ctx context.Context, path string) error {

	message, err := readMessage(path)
	if err != nil {
		return err
	}

	out, err := s.messages.Send(ctx, message)
	if err != nil {
		return err
	}

	s.logger.Info("message sent", zap.String("name", out.Name))
	return nil
}

// Validate runs the message from a json file through the API dry run.
func (s *Service) Validate(ctx context.Context, path string) error {

	message, err := readMessage(path)
	if err != nil {
		return err
	}

	out, err := s.messages.Validate(ctx, message)
	if err != nil {
		return err
	}

	s.logger.Info("message is valid", zap.String("name", out.Name))
	return nil
}

// Subscribe associates tokens with a topic and logs per-token failures.
func (s *Service) Subscribe(ctx context.Context, topicName string, tokens []string) error {

	res, err := s.topics.BatchSubscribe(ctx, topicName, tokens)
	if err != nil {
		return err
	}

	s.reportResults(topicName, tokens, res)
	return nil
}

// Unsubscribe removes the association of tokens with a topic.
func (s *Service) Unsubscribe(ctx context.Context, topicName string, tokens []string) error {

	res, err := s.topics.BatchUnsubscribe(ctx, topicName, tokens)
	if err != nil {
		return err
	}

	s.reportResults(topicName, tokens, res)
	return nil
}

// Info writes the token information to stdout as json.
func (s *Service) Info(ctx context.Context, token string, details bool) error {

	res, err := s.topics.Info(ctx, token, details)
	if err != nil {
		return err
	}

	var out interface{}
	switch {
	case res.Android != nil:
		out = res.Android
	default:
		out = res.IOS
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (s *Service) reportResults(topicName string, tokens []string, res *topic.ManagementResponse) {

	for i, result := range res.Results {
		if errValue, ok := result["error"]; ok {
			s.logger.Error("token failed",
				zap.String("topic", topicName),
				zap.Int("index", i),
				zap.String("error", errValue))
		}
	}

	s.logger.Info("topic updated",
		zap.String("topic", topicName),
		zap.Int("tokens", len(tokens)))
}

// readMessage decodes a message file. The variant is inferred from the
// addressing key, the same way the receiver does it.
func readMessage(path string) (fcm.Message, error) {

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "message file")
	}

	keys := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, errors.Wrap(err, "message file")
	}

	var message fcm.Message
	switch {
	case len(keys["token"]) > 0:
		message = &fcm.TokenMessage{}
	case len(keys["topic"]) > 0:
		message = &fcm.TopicMessage{}
	case len(keys["condition"]) > 0:
		message = &fcm.ConditionMessage{}
	default:
		return nil, errors.New("message file: no token, topic or condition key")
	}

	if err := json.Unmarshal(data, message); err != nil {
		return nil, errors.Wrap(err, "message file")
	}

	return message, nil
}
