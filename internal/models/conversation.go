package models

// SectionRef is an explicit optional section number. Sections start at 1,
// so a zero value with Valid=false is unambiguous; never test the number
// itself for "absent".
type SectionRef struct {
	Number int
	Valid  bool
}

// Section returns a set SectionRef.
func Section(n int) SectionRef {
	return SectionRef{Number: n, Valid: true}
}

// NoSection returns an absent SectionRef.
func NoSection() SectionRef {
	return SectionRef{}
}

// ConversationContext is the per-user chat state. It is loaded once at the
// start of a request, passed explicitly through classification, and written
// back once at the end. Only the owning session writes it.
type ConversationContext struct {
	User        *UserInfo
	LastIntent  string
	LastSection SectionRef
}

// ActionType tags the Action variants the client understands.
type ActionType string

const (
	ActionOpenURL ActionType = "open_url"
	ActionSuggest ActionType = "suggest"
)

// Action is a suggested UI follow-up attached to a reply.
// OpenURL carries URL, Suggest carries Value.
type Action struct {
	Type  ActionType `json:"type"`
	Label string     `json:"label"`
	URL   string     `json:"url,omitempty"`
	Value string     `json:"value,omitempty"`
}

// OpenURLAction builds a navigation action.
func OpenURLAction(label, url string) Action {
	return Action{Type: ActionOpenURL, Label: label, URL: url}
}

// SuggestAction builds a clickable next-message action.
func SuggestAction(label, value string) Action {
	return Action{Type: ActionSuggest, Label: label, Value: value}
}

// HandlerResponse is what a dispatched intent handler produces.
type HandlerResponse struct {
	Reply   string   `json:"reply"`
	Actions []Action `json:"actions"`
}
