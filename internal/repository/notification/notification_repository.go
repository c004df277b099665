package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"pickwise/pkg/logger"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

type MailjetConfig struct {
	MailjetBaseURL           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type MailjetRepository struct {
	mailjetConfig MailjetConfig
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg,
	}
}

type payloadSendEmail struct {
	Messages []mailMessage `json:"Messages"`
}

type mailParty struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailMessage struct {
	From     mailParty   `json:"From"`
	To       []mailParty `json:"To"`
	Subject  string      `json:"Subject"`
	TextPart string      `json:"TextPart"`
	HTMLPart string      `json:"HTMLPart"`
}

func (r MailjetRepository) SendEmail(toName, toEmail, subject, message string) error {
	payload := payloadSendEmail{
		Messages: []mailMessage{{
			From: mailParty{
				Email: r.mailjetConfig.MailjetSenderEmail,
				Name:  r.mailjetConfig.MailjetSenderName,
			},
			To:       []mailParty{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: message,
			HTMLPart: message,
		}},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(http.MethodPost, r.mailjetConfig.MailjetBaseURL+"/v3.1/send", bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	buildBasicAuth := goshortcute.StringtoBase64Encode(r.mailjetConfig.MailjetBasicAuthUsername + ":" + r.mailjetConfig.MailjetBasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+buildBasicAuth)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Warn("mailjet rejected email", "status", res.StatusCode, "body", string(bodyBytes))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}
