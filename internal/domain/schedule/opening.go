package schedule

import (
	"time"

	"github.com/felipepalage/agorahora-api/internal/httperr"
)

// MinutesPerDay é o limite superior (exclusivo) para OpensMin/ClosesMin.
const MinutesPerDay = 1440

// MinuteOfDay converte um horário de relógio em minutos desde a meia-noite.
// O instante é sempre fornecido pelo chamador, nunca lido aqui dentro.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsOpenAt decide se nowMin cai dentro da janela [openMin, closeMin).
// Quando closeMin <= openMin a janela atravessa a meia-noite: aberto se
// nowMin >= openMin OU nowMin < closeMin.
//
// openMin == closeMin é erro de configuração barrado em ValidateWindow;
// esta função nunca recebe esse caso de dados persistidos.
func IsOpenAt(openMin, closeMin, nowMin int) bool {
	if openMin < closeMin {
		return nowMin >= openMin && nowMin < closeMin
	}
	return nowMin >= openMin || nowMin < closeMin
}

// ValidateWindow valida a janela de funcionamento antes de persistir:
// ambos os valores em [0, 1440) e nunca iguais.
func ValidateWindow(openMin, closeMin int) error {
	if openMin < 0 || openMin >= MinutesPerDay {
		return httperr.ErrBusiness("invalid_window")
	}
	if closeMin < 0 || closeMin >= MinutesPerDay {
		return httperr.ErrBusiness("invalid_window")
	}
	if openMin == closeMin {
		return httperr.ErrBusiness("invalid_window")
	}
	return nil
}
