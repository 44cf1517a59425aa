// Package notify implements the best-effort Slack side channel invoked
// after a successful activity write. Failures here are logged and
// never surfaced to the submitter.
package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"cg-backend/internal/domain"
	"cg-backend/pkg/logger"
)

// Notifier announces committed activities to an external channel
type Notifier interface {
	NotifyActivity(ctx context.Context, rec domain.ActivityRecord) error
}

// SlackNotifier posts an activity summary to a Slack channel
type SlackNotifier struct {
	client    *slack.Client
	channelID string
	log       *logger.Logger
}

// NewSlackNotifier creates the notifier, or nil when the token or
// channel is missing so callers can skip notification entirely.
func NewSlackNotifier(token, channelID string, log *logger.Logger) *SlackNotifier {
	if token == "" || channelID == "" {
		return nil
	}
	return &SlackNotifier{
		client:    slack.New(token),
		channelID: channelID,
		log:       log,
	}
}

// NotifyActivity posts the logged-activity message
func (n *SlackNotifier) NotifyActivity(ctx context.Context, rec domain.ActivityRecord) error {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "🎉 New Culture Guides Activity!", true, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Name:* %s", rec.Name), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Slack:* %s", rec.SlackHandle), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Role:* %s", domain.RoleLabel(rec.Role)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Points Earned:* %d 🌟", rec.Points), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Event:* %s", rec.EventName), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Date:* %s", rec.EventDate), false, false),
	}

	blocks := []slack.Block{header, slack.NewSectionBlock(nil, fields, nil)}
	if rec.Notes != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Notes:* %s", rec.Notes), false, false),
			nil, nil,
		))
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText("🎉 New Culture Guides Activity Logged!", false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}

	n.log.WithFields(map[string]interface{}{
		"channel": n.channelID,
		"event":   rec.EventName,
	}).Debug("Slack notification sent")
	return nil
}
