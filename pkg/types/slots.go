package types

// SlotStepMinutes is the scheduling granularity of the barbershop grid.
const SlotStepMinutes = 15

// GenerateSlots возвращает упорядоченный список слотов от start до end
// с шагом step минут, ВКЛЮЧАЯ конечную границу.
//
// Конечная граница включается намеренно: последний подписанный слот периода
// (например "12:00" для утра) должен появляться в сетке. Это отличается от
// полуоткрытой декомпозиции занятых интервалов в OccupiedSlots.
//
// Если end раньше start, возвращается пустой список. start == end даёт
// ровно один слот.
func GenerateSlots(start, end TimeString, step int) ([]TimeString, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return nil, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]TimeString, 0)
	for m := startMin; m <= endMin; m += step {
		slot, err := FromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// Generate15MinSlots is GenerateSlots at the default 15-minute step.
func Generate15MinSlots(start, end TimeString) ([]TimeString, error) {
	return GenerateSlots(start, end, SlotStepMinutes)
}

// OccupiedSlots декомпозирует занятый интервал [start, end) в слоты с шагом
// step. Полуоткрытая семантика: слот, начинающийся ровно в end, свободен,
// поэтому стыкующиеся записи не пересекаются.
func OccupiedSlots(start, end TimeString, step int) ([]TimeString, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return nil, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]TimeString, 0)
	for m := startMin; m < endMin; m += step {
		slot, err := FromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
