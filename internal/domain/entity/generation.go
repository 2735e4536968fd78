package entity

// GenerationResult generation servisi javobi: tool chaqiruvi, matn yoki xato
type GenerationResult interface {
	isGenerationResult()
}

// GeneratedToolCall model funksiya chaqirdi
type GeneratedToolCall struct {
	Invocation ToolInvocation
}

// GeneratedText model oddiy matn qaytardi
type GeneratedText struct {
	Content string
}

// GenerationFailure servis ishlamadi yoki javob buzilgan. Fallback to'liq katalog.
type GenerationFailure struct {
	Status   int
	Message  string
	Err      error
	Fallback []Product
}

func (GeneratedToolCall) isGenerationResult() {}
func (GeneratedText) isGenerationResult()     {}
func (GenerationFailure) isGenerationResult() {}

func (f GenerationFailure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f GenerationFailure) Unwrap() error {
	return f.Err
}
