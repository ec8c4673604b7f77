package alignment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// AlignScoreClient calls a dedicated scoring service taking
// {evidence, claim} and returning a numeric score.
type AlignScoreClient struct {
	client *resty.Client
	apiURL string
}

var _ Scorer = &AlignScoreClient{}

func NewAlignScoreClient(apiURL string) *AlignScoreClient {
	return &AlignScoreClient{
		client: resty.New().SetTimeout(30 * time.Second),
		apiURL: apiURL,
	}
}

func (c *AlignScoreClient) Method() string {
	return "AlignScore"
}

type alignScorePayload struct {
	Evidence string `json:"evidence"`
	Claim    string `json:"claim"`
}

type alignScoreResult struct {
	AlignScore float64 `json:"alignscore"`
}

func (c *AlignScoreClient) Score(ctx context.Context, evidence, claim string) (*Result, error) {
	var body alignScoreResult

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(alignScorePayload{Evidence: evidence, Claim: claim}).
		SetResult(&body).
		Post(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("alignscore request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("alignscore api returned status %d", resp.StatusCode())
	}

	return &Result{Score: body.AlignScore, Reason: "N/A"}, nil
}
