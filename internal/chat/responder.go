package chat

// Fallback is the pinned reply whenever confidence falls below the active
// backend's threshold. Low confidence is not an error.
const Fallback = "Desculpe, não entendi sua pergunta. Pode reformular?"

// NoAnswer is returned by the classifier backend when the predicted intent
// has no training examples to draw a response from.
const NoAnswer = "Não tenho uma resposta para isso no momento."

// Reply is the outcome of one response selection.
type Reply struct {
	Text       string
	Confidence float64
	Matched    bool
}

// Responder selects a response for a (context-expanded) user input. The
// semantic and classifier backends are alternative implementations of this
// single contract.
type Responder interface {
	Respond(input string) (Reply, error)
}
