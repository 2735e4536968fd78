package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"google.golang.org/api/googleapi"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// toContents transcriptni Gemini contents ga aylantirish (system turn siz)
func toContents(transcript entity.Transcript) []*genai.Content {
	dialogue := transcript.Dialogue()
	contents := make([]*genai.Content, 0, len(dialogue))
	for _, turn := range dialogue {
		content := &genai.Content{Role: roleUser}
		if turn.Role == entity.RoleAssistant {
			content.Role = roleModel
		}

		switch {
		case turn.ToolCall != nil:
			content.Parts = []genai.Part{genai.FunctionCall{
				Name: turn.ToolCall.Name,
				Args: turn.ToolCall.Arguments,
			}}
		case turn.Content != "":
			content.Parts = []genai.Part{genai.Text(turn.Content)}
		default:
			continue
		}
		contents = append(contents, content)
	}
	return contents
}

// toTools tool e'lonlarini genai.Tool ga aylantirish
func toTools(decls []entity.ToolDeclaration) []*genai.Tool {
	fns := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		fns = append(fns, &genai.FunctionDeclaration{
			Name:        string(d.Name),
			Description: d.Description,
			Parameters:  toSchema(d.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: fns}}
}

func toSchema(p *entity.ParamSchema) *genai.Schema {
	if p == nil {
		return nil
	}

	s := &genai.Schema{
		Description: p.Description,
		Enum:        p.Enum,
		Required:    p.Required,
	}
	switch p.Type {
	case entity.ParamObject:
		s.Type = genai.TypeObject
	case entity.ParamInteger:
		s.Type = genai.TypeInteger
	default:
		s.Type = genai.TypeString
	}
	// genai.Schema da minimum yo'q, shuning uchun tavsifga yoziladi
	if p.Minimum != nil {
		s.Description = strings.TrimSpace(fmt.Sprintf("%s (minimum %d)", p.Description, *p.Minimum))
	}
	if len(p.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(p.Properties))
		for name, prop := range p.Properties {
			s.Properties[name] = toSchema(prop)
		}
	}
	return s
}

// interpretResponse candidates[0].content.parts[0] ni tool chaqiruvi yoki matnga ajratish
func interpretResponse(resp *genai.GenerateContentResponse) (entity.GenerationResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("no candidates: %w", entity.ErrMalformedUpstreamResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil, fmt.Errorf("candidate has no content: %w", entity.ErrMalformedUpstreamResponse)
	}

	switch part := content.Parts[0].(type) {
	case genai.FunctionCall:
		return toolCallResult(part), nil
	case *genai.FunctionCall:
		if part == nil {
			return nil, fmt.Errorf("nil function call: %w", entity.ErrMalformedUpstreamResponse)
		}
		return toolCallResult(*part), nil
	case genai.Text:
		return entity.GeneratedText{Content: string(part)}, nil
	default:
		return nil, fmt.Errorf("unsupported part %T: %w", part, entity.ErrMalformedUpstreamResponse)
	}
}

func toolCallResult(fc genai.FunctionCall) entity.GeneratedToolCall {
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}
	return entity.GeneratedToolCall{Invocation: entity.ToolInvocation{Name: fc.Name, Arguments: args}}
}

// upstreamStatus xatodan HTTP statusini aniqlash
func upstreamStatus(err error) int {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code > 0 {
		return gErr.Code
	}
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode() > 0 {
		return apiErr.HTTPCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// retryable 429 va 5xx qayta urinib ko'riladi
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	status := upstreamStatus(err)
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
