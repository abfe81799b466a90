package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/print-order-board/internal/domain/entity"
	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

// TelegramNotifier posts order events to the team chat. All sends are
// best-effort: a delivery failure is logged and dropped, never surfaced
// to the order flow.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	threadID int // topic root message id; 0 posts to the main chat
	log      *logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, threadID int, log *logger.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, threadID: threadID, log: log}, nil
}

func (n *TelegramNotifier) JobCreated(_ context.Context, job entity.Job, cost *entity.Cost) {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 새 주문 접수\n")
	fmt.Fprintf(&b, "주문번호: %s\n", job.JobID)
	fmt.Fprintf(&b, "매체: %s\n", job.MediaName)
	fmt.Fprintf(&b, "요청자: %s\n", job.RequesterName)
	if job.Vendor != "" {
		fmt.Fprintf(&b, "업체: %s\n", job.Vendor)
	}
	fmt.Fprintf(&b, "납기일: %s / 수량: %s", job.DueDate, job.Qty)
	if cost != nil {
		fmt.Fprintf(&b, "\n예상 금액: %s원 (VAT 포함)", formatKRW(cost.Total))
	}
	n.send(b.String())
}

func (n *TelegramNotifier) JobStatusChanged(_ context.Context, job entity.Job, prevStatus string) {
	var b strings.Builder
	fmt.Fprintf(&b, "🔄 주문 상태 변경\n")
	fmt.Fprintf(&b, "주문번호: %s\n", job.JobID)
	fmt.Fprintf(&b, "매체: %s\n", job.MediaName)
	fmt.Fprintf(&b, "%s → %s", prevStatus, job.Status)
	if job.LastUpdatedBy != "" {
		fmt.Fprintf(&b, "\n변경: %s", job.LastUpdatedBy)
	}
	n.send(b.String())
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if n.threadID != 0 {
		// Topic posts ride on the topic's root message.
		msg.ReplyToMessageID = n.threadID
	}
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Warn("telegram send failed", "err", err)
	}
}

// formatKRW groups digits by thousands ("1408000" reads badly in chat).
func formatKRW(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
