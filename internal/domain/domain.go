package domain

// CorpusEntry is one question/response pair from the advice dataset.
// Entries are immutable after load; question texts need not be unique.
type CorpusEntry struct {
	Question string
	Response string
}

// Slots holds the contextual values carried across turns. Field names on
// disk follow the session file format (Portuguese keys).
type Slots struct {
	SoilType       string `json:"tipo_solo,omitempty"`
	FertilityLevel string `json:"nivel_fertilidade,omitempty"`
	Problem        string `json:"problema,omitempty"`
	DesiredAction  string `json:"acao_desejada,omitempty"`
}

// Empty reports whether no slot has been filled.
func (s Slots) Empty() bool {
	return s == Slots{}
}

// Turn is a single exchange in a conversation. Normalized is the
// preprocessed form of the (possibly context-expanded) input and is not
// persisted; the session file carries entrada, resposta, confianca
// (always written, zero included) and the optional contexto snapshot.
type Turn struct {
	Entrada    string  `json:"entrada"`
	Normalized string  `json:"-"`
	Resposta   string  `json:"resposta"`
	Confianca  float64 `json:"confianca"`
	Contexto   *Slots  `json:"contexto,omitempty"`
}

// Session is the persisted record of one conversation. Data is the save
// timestamp formatted as "2006-01-02 15:04:05".
type Session struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	Conversas []Turn `json:"conversas"`
}
