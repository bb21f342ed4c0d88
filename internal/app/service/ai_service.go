package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/casaviva/hogar-backend/config"
	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/pkg/logger"
)

var (
	ErrAIUnavailable     = errors.New("ai service unavailable")
	ErrAIInvalidResponse = errors.New("ai service returned an invalid response")
)

// ImageAnalysis is what the model extracts from a product photo
type ImageAnalysis struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type DescriptionRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Current  string   `json:"current_description"`
}

type ImagePromptRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Style       string `json:"style"`
}

// AIService wraps the generative flows of the back-office and the
// storefront recommendations. Every method returns ErrAIUnavailable when no
// API key is configured or the upstream call fails.
type AIService interface {
	AnalyzeProductImage(ctx context.Context, imageURL string, categories []string) (*ImageAnalysis, error)
	SuggestDescription(ctx context.Context, req DescriptionRequest) (string, error)
	GenerateImagePrompt(ctx context.Context, req ImagePromptRequest) (string, error)
	RecommendProducts(ctx context.Context, product model.Product, candidates []model.Product, limit int) ([]string, error)
}

type aiService struct {
	config     config.OpenAIConfig
	httpClient *http.Client
}

func NewAIService(cfg config.OpenAIConfig) AIService {
	return &aiService{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// Content is a string or a list of content parts
type openAIMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

const systemPrompt = "Eres el asistente de catálogo de Casa Viva, una tienda online de artículos para el hogar. " +
	"Escribes en español neutro, con un tono cálido y preciso, sin inventar datos que no se te han dado."

func (s *aiService) AnalyzeProductImage(ctx context.Context, imageURL string, categories []string) (*ImageAnalysis, error) {
	var prompt strings.Builder
	prompt.WriteString("Analiza la foto de este producto y devuelve un objeto JSON con las claves ")
	prompt.WriteString(`"title" (máximo 60 caracteres), "description" (2 o 3 frases), "category" y "tags" (3 a 6 palabras clave).`)
	if len(categories) > 0 {
		prompt.WriteString(fmt.Sprintf("\nLa categoría debe ser exactamente una de: %s.", strings.Join(categories, ", ")))
	}

	content, err := s.complete(ctx, []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: prompt.String()},
			{Type: "image_url", ImageURL: &imageURLPart{URL: imageURL}},
		}},
	}, true)
	if err != nil {
		return nil, err
	}

	var analysis ImageAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIInvalidResponse, err)
	}
	if analysis.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrAIInvalidResponse)
	}
	return &analysis, nil
}

func (s *aiService) SuggestDescription(ctx context.Context, req DescriptionRequest) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Escribe la descripción de ficha de producto para la tienda.\n")
	prompt.WriteString(fmt.Sprintf("Producto: %s\n", req.Title))
	if req.Category != "" {
		prompt.WriteString(fmt.Sprintf("Categoría: %s\n", req.Category))
	}
	if len(req.Keywords) > 0 {
		prompt.WriteString(fmt.Sprintf("Palabras clave: %s\n", strings.Join(req.Keywords, ", ")))
	}
	if req.Current != "" {
		prompt.WriteString(fmt.Sprintf("Descripción actual a mejorar: %s\n", req.Current))
	}
	prompt.WriteString("\nEntre 40 y 90 palabras, en uno o dos párrafos. ")
	prompt.WriteString("No menciones precios, stock ni plazos de entrega. Devuelve solo el texto de la descripción.")

	return s.complete(ctx, []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt.String()},
	}, false)
}

func (s *aiService) GenerateImagePrompt(ctx context.Context, req ImagePromptRequest) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Redacta en inglés un prompt para un generador de imágenes que produzca una foto de catálogo de este producto.\n")
	prompt.WriteString(fmt.Sprintf("Product: %s\n", req.Title))
	if req.Description != "" {
		prompt.WriteString(fmt.Sprintf("Description: %s\n", req.Description))
	}
	if req.Category != "" {
		prompt.WriteString(fmt.Sprintf("Category: %s\n", req.Category))
	}
	style := req.Style
	if style == "" {
		style = "bright scandinavian interior, natural light, soft shadows"
	}
	prompt.WriteString(fmt.Sprintf("Style: %s\n", style))
	prompt.WriteString("\nDescribe composición, iluminación, fondo y encuadre en una sola frase larga. Devuelve solo el prompt.")

	return s.complete(ctx, []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt.String()},
	}, false)
}

type recommendationResponse struct {
	IDs []string `json:"ids"`
}

// RecommendProducts asks for up to limit candidate ids that complement product.
// Ids the model invents are returned as is; callers match them against candidates.
func (s *aiService) RecommendProducts(ctx context.Context, product model.Product, candidates []model.Product, limit int) ([]string, error) {
	if len(candidates) == 0 || limit <= 0 {
		return []string{}, nil
	}

	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Un cliente está viendo \"%s\" (%s, %.2f €).\n", product.Title, product.CategoryName(), product.Price))
	prompt.WriteString(fmt.Sprintf("Elige hasta %d productos del siguiente listado que combinen bien con él:\n", limit))
	for _, c := range candidates {
		prompt.WriteString(fmt.Sprintf("- id=%s | %s | %s | %.2f €\n", c.ExternalID, c.Title, c.CategoryName(), c.Price))
	}
	prompt.WriteString(`Devuelve un objeto JSON {"ids": [...]} usando solo ids del listado, del más al menos recomendado.`)

	content, err := s.complete(ctx, []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt.String()},
	}, true)
	if err != nil {
		return nil, err
	}

	var resp recommendationResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIInvalidResponse, err)
	}
	return resp.IDs, nil
}

// complete sends one chat completion and returns the trimmed message content
func (s *aiService) complete(ctx context.Context, messages []openAIMessage, jsonOutput bool) (string, error) {
	if s.config.APIKey == "" {
		return "", fmt.Errorf("%w: OpenAI API key is not configured", ErrAIUnavailable)
	}

	reqData := openAIRequest{
		Model:       s.config.Model,
		Messages:    messages,
		Temperature: 0.7,
	}
	if jsonOutput {
		reqData.ResponseFormat = &responseFormat{Type: "json_object"}
		reqData.Temperature = 0.2
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("OpenAI request failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrAIUnavailable, err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", ErrAIInvalidResponse, err)
	}
	if openAIResp.Error != nil {
		logger.Warn("OpenAI API error", map[string]interface{}{
			"status": resp.StatusCode,
			"type":   openAIResp.Error.Type,
		})
		return "", fmt.Errorf("%w: %s", ErrAIUnavailable, openAIResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrAIInvalidResponse)
	}

	content := strings.TrimSpace(openAIResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrAIInvalidResponse)
	}
	return content, nil
}
