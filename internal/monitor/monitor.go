package monitor

// Percent доля part от total в процентах с отбрасыванием дробной части.
// При total == 0 возвращает 0.
func Percent(part, total int64) int64 {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}

// Delta разница end - start в знаковом виде.
func Delta(start, end uint64) int64 {
	return int64(end - start)
}
