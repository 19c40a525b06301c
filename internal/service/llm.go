package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"recipe-planner/config"
)

var (
	// ErrAPIKeyMissing means the generation service credential is not
	// configured. Surfaced before any request is made.
	ErrAPIKeyMissing = errors.New("GEMINI_API_KEY is not configured")

	// ErrServiceUnavailable wraps transport failures talking to the
	// generation service.
	ErrServiceUnavailable = errors.New("generation service unavailable")

	// ErrBadResponse wraps responses that are not valid JSON or do not
	// match the expected envelope.
	ErrBadResponse = errors.New("unexpected generation service response")
)

// GeneratedIngredient is one ingredient entry in a generated recipe.
type GeneratedIngredient struct {
	Name     string `json:"name" validate:"required,max=100"`
	Quantity string `json:"quantity" validate:"max=100"`
}

// GeneratedRecipe is one recipe object from the generation response array.
type GeneratedRecipe struct {
	Title              string                `json:"title" validate:"required,max=255"`
	Instructions       string                `json:"instructions" validate:"required"`
	CookingTimeMinutes *int                  `json:"cooking_time_minutes" validate:"omitempty,gte=0"`
	Cuisine            string                `json:"cuisine" validate:"max=100"`
	Ingredients        []GeneratedIngredient `json:"ingredients" validate:"dive"`
}

// GenerateParams is the caller's free-text generation request.
type GenerateParams struct {
	Ingredients        string
	DietaryPreferences string
	CookingTime        string
	Cuisine            string
	NumRecipes         int
}

// LLMService calls the Gemini generateContent API and parses its structured
// recipe responses. An optional Redis client caches raw responses by prompt.
type LLMService struct {
	apiKey string
	apiURL string
	client *resty.Client
	redis  *redis.Client
	logger *zap.Logger
}

// NewLLMService builds the service from explicit configuration. It fails up
// front when the credential is absent so handlers can report a configuration
// error instead of failing mid-request.
func NewLLMService(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (*LLMService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	client := resty.New().
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &LLMService{
		apiKey: cfg.GeminiAPIKey,
		apiURL: cfg.GeminiAPIURL,
		client: client,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// geminiRequest is the generateContent payload: a prompt plus a response
// schema constraining the model to the recipe-array shape.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// recipeArraySchema constrains the response to the recipe array shape the
// mapper expects.
var recipeArraySchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"title": {"type": "STRING"},
			"instructions": {"type": "STRING"},
			"cooking_time_minutes": {"type": "INTEGER"},
			"cuisine": {"type": "STRING"},
			"ingredients": {
				"type": "ARRAY",
				"items": {
					"type": "OBJECT",
					"properties": {
						"name": {"type": "STRING"},
						"quantity": {"type": "STRING"}
					},
					"propertyOrdering": ["name", "quantity"]
				}
			}
		},
		"propertyOrdering": ["title", "instructions", "cooking_time_minutes", "cuisine", "ingredients"]
	}
}`)

// BuildPrompt assembles the natural-language instruction for the requested
// constraints.
func BuildPrompt(params GenerateParams) string {
	numRecipes := params.NumRecipes
	if numRecipes < 1 {
		numRecipes = 1
	}

	prompt := fmt.Sprintf(
		"Generate %d unique recipe(s) in JSON format. "+
			"Each recipe should have 'title', 'instructions' (step-by-step), "+
			"'cooking_time_minutes' (integer), 'cuisine', and 'ingredients' (an array of objects, "+
			"each with 'name' and 'quantity').\n\n", numRecipes)
	if params.Ingredients != "" {
		prompt += fmt.Sprintf("Use these main ingredients: %s.\n", params.Ingredients)
	}
	if params.DietaryPreferences != "" {
		prompt += fmt.Sprintf("Adhere to these dietary preferences: %s.\n", params.DietaryPreferences)
	}
	if params.CookingTime != "" {
		prompt += fmt.Sprintf("Aim for a cooking time around %s minutes.\n", params.CookingTime)
	}
	if params.Cuisine != "" {
		prompt += fmt.Sprintf("Focus on %s cuisine.\n", params.Cuisine)
	}
	prompt += "Ensure the JSON is valid and only contains the recipe data."
	return prompt
}

// GenerateRecipes sends one generation request and parses the returned array
// of recipe objects. A single attempt is made per invocation; there is no
// retry.
func (s *LLMService) GenerateRecipes(ctx context.Context, params GenerateParams) ([]GeneratedRecipe, error) {
	prompt := BuildPrompt(params)

	if cached, ok := s.cacheGet(ctx, prompt); ok {
		return cached, nil
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   recipeArraySchema,
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(reqBody).
		Post(s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, resp.StatusCode(), resp.String())
	}

	var envelope geminiResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates in response", ErrBadResponse)
	}

	text := envelope.Candidates[0].Content.Parts[0].Text
	var recipes []GeneratedRecipe
	if err := json.Unmarshal([]byte(text), &recipes); err != nil {
		return nil, fmt.Errorf("%w: generated text is not a recipe array: %v", ErrBadResponse, err)
	}

	s.cacheSet(ctx, prompt, recipes)

	return recipes, nil
}

const cacheTTL = 24 * time.Hour

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "recipe:generation:" + hex.EncodeToString(sum[:])
}

func (s *LLMService) cacheGet(ctx context.Context, prompt string) ([]GeneratedRecipe, bool) {
	if s.redis == nil {
		return nil, false
	}

	data, err := s.redis.Get(ctx, cacheKey(prompt)).Bytes()
	if err != nil {
		return nil, false
	}

	var recipes []GeneratedRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		s.logger.Warn("discarding unreadable cached generation", zap.Error(err))
		return nil, false
	}
	return recipes, true
}

func (s *LLMService) cacheSet(ctx context.Context, prompt string, recipes []GeneratedRecipe) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(prompt), data, cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache generation response", zap.Error(err))
	}
}
