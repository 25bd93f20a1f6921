package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/smblend/credit-service/internal/domain/port"
)

// OpenAIMemoConfig configures the LLM-backed memo generator.
type OpenAIMemoConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
}

// OpenAIMemoGenerator generates credit memos through the OpenAI chat
// completions API. Transient failures are retried with exponential backoff;
// persistent failures fall back to the deterministic template memo, so
// Generate never returns an error.
type OpenAIMemoGenerator struct {
	cfg        OpenAIMemoConfig
	httpClient *http.Client
	fallback   *TemplateMemoGenerator
	logger     *slog.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIMemoGenerator creates the adapter. Zero-value timeout defaults
// to 30s.
func NewOpenAIMemoGenerator(cfg OpenAIMemoConfig, logger *slog.Logger) *OpenAIMemoGenerator {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &OpenAIMemoGenerator{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		fallback:   NewTemplateMemoGenerator(),
		logger:     logger,
	}
}

// Generate produces the memo, falling back to the template on any failure.
func (g *OpenAIMemoGenerator) Generate(ctx context.Context, req port.MemoRequest) (string, error) {
	if g.cfg.APIKey == "" {
		return g.fallback.Generate(ctx, req)
	}

	prompt := buildMemoPrompt(req)

	var memo string
	operation := func() error {
		out, err := g.callChatCompletions(ctx, prompt)
		if err != nil {
			return err
		}
		memo = out
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(g.cfg.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		g.logger.WarnContext(ctx, "memo generation via LLM failed, using template",
			"business_name", req.BusinessName, "error", err)
		return g.fallback.Generate(ctx, req)
	}
	return memo, nil
}

func (g *OpenAIMemoGenerator) callChatCompletions(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a senior credit analyst with 15+ years experience in small business lending.",
			},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", backoff.Permanent(err)
	}

	url := strings.TrimSuffix(g.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("chat completions status %d: %s", resp.StatusCode, payload)
		// 4xx other than 429 will not succeed on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// buildMemoPrompt renders the analysis facts into the analyst prompt.
func buildMemoPrompt(req port.MemoRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a senior credit analyst at a commercial lending institution. Generate a professional credit memo for the following small business loan application.\n\n")

	industry := req.Industry
	if industry == "" {
		industry = "Unknown"
	}
	fmt.Fprintf(&b, "**BUSINESS INFORMATION:**\n")
	fmt.Fprintf(&b, "- Business Name: %s\n", req.BusinessName)
	fmt.Fprintf(&b, "- Industry: %s\n", industry)
	fmt.Fprintf(&b, "- Loan Amount Requested: $%s\n", req.LoanAmount.StringFixed(2))
	fmt.Fprintf(&b, "- Estimated Monthly Payment: $%s\n", req.MonthlyPayment.StringFixed(2))
	if req.TotalInterest.IsPositive() {
		fmt.Fprintf(&b, "- Total Interest Over Term: $%s\n", req.TotalInterest.StringFixed(2))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**FINANCIAL ANALYSIS:**\n")
	fmt.Fprintf(&b, "- Average Monthly Revenue: $%s\n", req.Metrics.AvgMonthlyRevenue.StringFixed(2))
	fmt.Fprintf(&b, "- Debt Service Coverage Ratio (DSCR): %.2f\n", req.Metrics.DSCR)
	fmt.Fprintf(&b, "- Revenue Volatility: %.1f%%\n", req.Metrics.RevenueVolatility*100)
	fmt.Fprintf(&b, "- Business Stability Score: %d/100\n\n", req.Metrics.StabilityScore)

	fmt.Fprintf(&b, "**RISK ASSESSMENT:**\n")
	fmt.Fprintf(&b, "- Overall Risk Level: %s\n\n", req.Assessment.RiskLevel)

	fmt.Fprintf(&b, "Risk Flags:\n")
	if len(req.Assessment.Flags) == 0 {
		fmt.Fprintf(&b, "- None identified\n")
	}
	for _, f := range req.Assessment.Flags {
		fmt.Fprintf(&b, "- [%s] %s\n", f.Severity, f.Message)
	}

	fmt.Fprintf(&b, "\nPositive Signals:\n")
	if len(req.Assessment.PositiveSignals) == 0 {
		fmt.Fprintf(&b, "- None identified\n")
	}
	for _, s := range req.Assessment.PositiveSignals {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	fmt.Fprintf(&b, "\n**RECOMMENDATION:**\n")
	fmt.Fprintf(&b, "- Decision: %s\n", req.Decision.Recommendation)
	if len(req.Decision.Conditions) > 0 {
		fmt.Fprintf(&b, "- Conditions:\n")
		for _, c := range req.Decision.Conditions {
			fmt.Fprintf(&b, "  * %s\n", c)
		}
	}
	if len(req.Decision.DeclineReasons) > 0 {
		fmt.Fprintf(&b, "- Reasons for Decline:\n")
		for _, r := range req.Decision.DeclineReasons {
			fmt.Fprintf(&b, "  * %s\n", r)
		}
	}

	fmt.Fprintf(&b, "\n**INSTRUCTIONS:**\n")
	fmt.Fprintf(&b, "Write a professional 3-paragraph credit memo:\n\n")
	fmt.Fprintf(&b, "1. **Business Overview** (2-3 sentences): Briefly describe the business, loan purpose, and key business characteristics.\n\n")
	fmt.Fprintf(&b, "2. **Financial Analysis** (3-4 sentences): Analyze the financial metrics. Discuss DSCR, revenue stability, cash flow, and any notable strengths or weaknesses. Be specific with numbers.\n\n")
	fmt.Fprintf(&b, "3. **Recommendation** (2-3 sentences): State your recommendation clearly (APPROVE, APPROVE WITH CONDITIONS, or DECLINE). Explain the reasoning. If conditional approval, list specific conditions. If decline, explain why.\n\n")
	fmt.Fprintf(&b, "Write in a professional, objective tone. Be concise but thorough. Use specific numbers from the analysis.")

	return b.String()
}
