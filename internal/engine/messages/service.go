package messages

import "errors"

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ErrInvalidParams marks pagination bounds the caller got wrong. Out of
// range values are rejected, never clamped.
var ErrInvalidParams = errors.New("invalid pagination parameters")

type ListParams struct {
	Limit  int
	Offset int
	Filter Filter
}

// MessageOut is the external message representation. The internal msisdn
// columns surface as plain from/to.
type MessageOut struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	TS        string  `json:"ts"`
	Text      *string `json:"text"`
}

type ListResponse struct {
	Data   []MessageOut `json:"data"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type StatsResponse struct {
	TotalMessages     int           `json:"total_messages"`
	SendersCount      int           `json:"senders_count"`
	MessagesPerSender []SenderCount `json:"messages_per_sender"`
	FirstMessageTS    *string       `json:"first_message_ts"`
	LastMessageTS     *string       `json:"last_message_ts"`
}

// Service translates query parameters into store calls and assembles the
// response envelopes.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(p ListParams) (*ListResponse, error) {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return nil, ErrInvalidParams
	}
	if p.Offset < 0 {
		return nil, ErrInvalidParams
	}

	msgs, total, err := s.repo.Query(p.Filter, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}

	data := make([]MessageOut, len(msgs))
	for i, m := range msgs {
		data[i] = MessageOut{
			MessageID: m.MessageID,
			From:      m.From,
			To:        m.To,
			TS:        m.TS,
			Text:      m.Text,
		}
	}

	return &ListResponse{
		Data:   data,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}, nil
}

func (s *Service) StatsOverview() (*StatsResponse, error) {
	stats, err := s.repo.Stats()
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalMessages:     stats.TotalMessages,
		SendersCount:      stats.SendersCount,
		MessagesPerSender: stats.PerSender,
		FirstMessageTS:    stats.FirstTS,
		LastMessageTS:     stats.LastTS,
	}, nil
}
