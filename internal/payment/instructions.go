package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

var instructionMap = map[Method][]string{
	MethodPix: {
		"Abra o app do seu banco e escolha pagar com Pix",
		"Pague {{amount}} usando a chave informada pela loja",
		"Envie o comprovante pelo WhatsApp com o número do pedido {{order_id}}",
	},
	MethodCash: {
		"Pagamento em dinheiro na entrega",
		"Separe {{amount}}; se precisar de troco, avise nas observações",
	},
	MethodCard: {
		"Pagamento no cartão na entrega",
		"O entregador leva a maquininha; valor {{amount}}",
	},
	MethodMock: {
		"Pagamento simulado de {{amount}} para testes",
	},
}

// Instructions returns the customer-facing steps for m with the order
// values filled in.
func Instructions(m Method, orderID string, amount decimal.Decimal) []string {
	steps, ok := instructionMap[m]
	if !ok {
		return []string{"Combine a forma de pagamento com a loja"}
	}

	return injectVariables(steps, map[string]string{
		"amount":   FormatBRL(amount),
		"order_id": orderID,
	})
}

func injectVariables(steps []string, vars map[string]string) []string {
	result := make([]string, 0, len(steps))
	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}
	return result
}

// FormatBRL renders amount as Brazilian currency, e.g. "R$ 1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return "R$ " + sign + b.String() + "," + frac
}
