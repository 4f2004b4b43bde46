package guia

// SaleStatus é o status da venda (pedido) dona das guias.
type SaleStatus string

const (
	SaleConcluida SaleStatus = "concluida"
	SaleCancelada SaleStatus = "cancelada"
	SaleEstornada SaleStatus = "estornada"
)

// CascadeResult resume uma operação em cascata sobre o pedido.
// Affected < Total não é erro: sinaliza que o pedido precisa de revisão manual.
type CascadeResult struct {
	SaleID   string
	Affected int
	Total    int
	Failed   []FailedGuide

	// GuideIDs lista as guias alcançadas pela cascata, afetadas ou não.
	GuideIDs []string
}

type FailedGuide struct {
	GuideID string
	Status  Status
	Reason  string
}

// Partial segue o contrato da cascata: menos guias afetadas do que existentes no pedido.
func (r CascadeResult) Partial() bool {
	return r.Affected < r.Total
}

// HasFailures indica que alguma guia elegível falhou; as não elegíveis não contam.
func (r CascadeResult) HasFailures() bool {
	return len(r.Failed) > 0
}
