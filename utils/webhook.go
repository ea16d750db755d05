package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"lms/config"
	"lms/models"
)

// RelayNotification forwards a stored notification to the configured webhook
// endpoint. Fire-and-forget: failures are logged, never surfaced to the
// request that produced the notification.
func RelayNotification(n models.Notification) {
	webhookURL := config.AppConfig.NotifyWebhookURL
	if webhookURL == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)

		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]interface{}{
				"id":          n.ID,
				"type":        n.Type,
				"from":        n.FromUser,
				"to":          n.ToUser,
				"message":     n.Message,
				"course_name": n.CourseName,
				"related_id":  n.RelatedID,
				"for_role":    n.ForRole,
				"created_at":  n.CreatedAt,
			}).
			Post(webhookURL)

		if err != nil {
			log.Printf("Error relaying notification %d to webhook: %v", n.ID, err)
			return
		}
		if resp.StatusCode() >= 300 {
			log.Printf("Webhook relay for notification %d returned status %d", n.ID, resp.StatusCode())
		}
	}()
}
