package domain

import "github.com/barbearia-jao/agenda-service/pkg/types"

// ConflictResult is the outcome of a conflict check against the existing
// appointments of a date.
type ConflictResult struct {
	Conflict     bool
	ConflictWith *Appointment
}

// FindConflict ищет пересечение кандидата [start, end) с существующими
// записями. Два интервала конфликтуют тогда и только тогда, когда
// s1 < e2 && e1 > s2 (строгие неравенства): записи "встык" (конец одной
// ровно в начале другой) конфликтом НЕ являются.
//
// excludeID исключает запись из проверки (при редактировании запись не
// должна конфликтовать сама с собой). Отмененные записи пропускаются.
// Возвращается первая найденная коллизия, поиск линейный.
//
// Проверка носит рекомендательный характер: данные могли устареть между
// чтением и записью. Финальную гарантию "один слот - одна запись" дает
// сериализуемая транзакция бронирования, а не этот вызов.
func FindConflict(start, end types.TimeString, existing []*Appointment, excludeID *int64) ConflictResult {
	candidateStart, err := start.Minutes()
	if err != nil {
		return ConflictResult{}
	}
	candidateEnd, err := end.Minutes()
	if err != nil {
		return ConflictResult{}
	}

	for _, apt := range existing {
		if !apt.IsActive() {
			continue
		}
		if excludeID != nil && apt.ID == *excludeID {
			continue
		}

		aptStart, err := apt.StartTime.Minutes()
		if err != nil {
			continue
		}
		aptEnd, err := apt.EndOrDefault().Minutes()
		if err != nil {
			continue
		}

		if candidateStart < aptEnd && candidateEnd > aptStart {
			return ConflictResult{Conflict: true, ConflictWith: apt}
		}
	}

	return ConflictResult{}
}
