package guia

// ===============================
// Guide Status
// ===============================

type Status string

const (
	StatusEmitida   Status = "emitida"
	StatusRealizada Status = "realizada"
	StatusFaturada  Status = "faturada"
	StatusPaga      Status = "paga"
	StatusCancelada Status = "cancelada"
	StatusEstornada Status = "estornada"
	StatusExpirada  Status = "expirada"
)

var allStatuses = []Status{
	StatusEmitida,
	StatusRealizada,
	StatusFaturada,
	StatusPaga,
	StatusCancelada,
	StatusEstornada,
	StatusExpirada,
}

func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ===============================
// Actor
// ===============================

// Actor é a classe de autorização de quem dispara a transição.
type Actor string

const (
	ActorPrestador Actor = "prestador"
	ActorUnidade   Actor = "unidade"
)

func ParseActor(s string) (Actor, bool) {
	switch Actor(s) {
	case ActorPrestador, ActorUnidade:
		return Actor(s), true
	}
	return "", false
}

// ===============================
// Transition table
// ===============================

// O prestador conduz o ciclo de atendimento; só a unidade movimenta dinheiro (paga/estornada).
var transitions = map[Actor]map[Status][]Status{
	ActorPrestador: {
		StatusEmitida:   {StatusRealizada, StatusCancelada},
		StatusRealizada: {StatusFaturada, StatusCancelada},
		StatusFaturada:  {StatusCancelada},
	},
	ActorUnidade: {
		StatusEmitida:   {StatusCancelada},
		StatusRealizada: {StatusCancelada},
		StatusFaturada:  {StatusPaga, StatusCancelada, StatusEstornada},
		StatusPaga:      {StatusEstornada},
	},
}

// AllowedNext devolve os status alcançáveis a partir de current para o ator.
// Status ausentes da tabela (terminais ou desconhecidos) devolvem lista vazia.
func AllowedNext(current Status, actor Actor) []Status {
	next := transitions[actor][current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func IsTransitionAllowed(current, candidate Status, actor Actor) bool {
	for _, s := range transitions[actor][current] {
		if s == candidate {
			return true
		}
	}
	return false
}

// IsTerminal indica status dos quais a guia nunca mais sai.
func IsTerminal(s Status) bool {
	return s == StatusCancelada || s == StatusEstornada
}

// cancellable são os status que o cancelamento de pedido tenta levar a cancelada.
var cancellable = map[Status]bool{
	StatusEmitida:   true,
	StatusRealizada: true,
	StatusFaturada:  true,
}

func IsCancellable(s Status) bool {
	return cancellable[s]
}

func IsReversible(s Status) bool {
	return s == StatusPaga
}
