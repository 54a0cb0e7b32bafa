package address

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/utils"

	"go.uber.org/zap"
)

const DefaultViaCEPURL = "https://viacep.com.br"

// Lookup resolves postal codes to street addresses.
type Lookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        any    `json:"erro"`
}

type viaCEP struct {
	baseURL    string
	httpClient *http.Client
}

func NewViaCEP(baseURL string, httpClient *http.Client) Lookup {
	if baseURL == "" {
		baseURL = DefaultViaCEPURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   10 * time.Second,
			Transport: logger.Transport(nil),
		}
	}
	return &viaCEP{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (v *viaCEP) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits := utils.DigitsOnly(cep)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "address"),
		zap.String("method", "Lookup"),
		zap.String("cep", digits),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/ws/"+digits+"/json/", nil)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Error("viacep request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read viacep response: %w", err)
	}

	// ViaCEP answers 400 for malformed codes
	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCEP
	}
	if resp.StatusCode != http.StatusOK {
		log.Error("viacep returned non-success status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("viacep error: status %d", resp.StatusCode)
	}

	var res viaCEPResponse
	if err := json.Unmarshal(body, &res); err != nil {
		log.Error("failed decoding viacep response", zap.Error(err))
		return nil, err
	}

	if notFound(res.Erro) {
		log.Info("cep not found")
		return nil, ErrCEPNotFound
	}

	return &Address{
		CEP:          digits,
		Street:       res.Logradouro,
		Complement:   res.Complemento,
		Neighborhood: res.Bairro,
		City:         res.Localidade,
		State:        res.UF,
	}, nil
}

// notFound accepts both {"erro": true} and the newer {"erro": "true"}.
func notFound(v any) bool {
	switch e := v.(type) {
	case bool:
		return e
	case string:
		return e == "true"
	}
	return false
}
