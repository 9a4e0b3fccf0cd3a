package domain

type ReplyStatus string

const (
	ReplyOK       ReplyStatus = "ok"
	ReplyFallback ReplyStatus = "fallback"
)

// Reply is what the concierge hands back. A fallback reply carries the
// reason the model text could not be used; callers still show Text.
type Reply struct {
	Text   string
	Status ReplyStatus
	Reason error
}

func OKReply(text string) Reply {
	return Reply{Text: text, Status: ReplyOK}
}

func FallbackReply(text string, reason error) Reply {
	return Reply{Text: text, Status: ReplyFallback, Reason: reason}
}

func (r Reply) IsFallback() bool {
	return r.Status == ReplyFallback
}
