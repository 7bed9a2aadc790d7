package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/middleware"
)

// Mailer はサインイン用リンクなどのメールを送る
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

var errHeaderInjection = errors.New("mail header contains a line break")

// LogMailer は送らずにログへ出す。開発用。
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	middleware.GetLogger(ctx).Info("Mail (log only)", "to", to, "subject", subject, "body", body)
	return nil
}

// SmtpMailer は認証なしの SMTP に送る。ローカルの mailpit や mailhog を想定。
type SmtpMailer struct {
	host string
	addr string
	from string
	now  func() time.Time
}

func NewSmtpMailer(cfg *config.SMTPConfig) *SmtpMailer {
	return &SmtpMailer{
		host: cfg.Host,
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
		now:  time.Now,
	}
}

// composeMessage は text/plain の1通を組み立てる。件名は RFC 2047 でエンコードする。
func composeMessage(from, to, subject, body string, at time.Time) ([]byte, error) {
	for _, h := range []string{from, to, subject} {
		if strings.ContainsAny(h, "\r\n") {
			return nil, errHeaderInjection
		}
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes(), nil
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	msg, err := composeMessage(m.from, to, subject, body, m.now())
	if err != nil {
		return fmt.Errorf("SmtpMailer.Send: %w", err)
	}

	// net/smtp は context を受け取らないので接続だけ DialContext で張る
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", m.addr)
		return fmt.Errorf("SmtpMailer.Send: dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SmtpMailer.Send: handshake: %w", err)
	}
	defer c.Close()

	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("SmtpMailer.Send: MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("SmtpMailer.Send: RCPT TO: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("SmtpMailer.Send: DATA: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmt.Errorf("SmtpMailer.Send: write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("SmtpMailer.Send: finish: %w", err)
	}

	logger.Info("Email sent via SMTP", "subject", subject)
	return c.Quit()
}

// NewMailer は mailer.type に応じて実装を選ぶ。不明な種類はログ出力にする。
func NewMailer(ctx context.Context, cfg *config.Config) (Mailer, error) {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "ses":
		logger.Info("Initializing SES mailer...", "region", cfg.SES.Region)
		m, err := NewSESMailer(ctx, &cfg.SES)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "smtp":
		logger.Info("Initializing SMTP mailer...", "host", cfg.SMTP.Host)
		return NewSmtpMailer(&cfg.SMTP), nil
	case "", "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}
