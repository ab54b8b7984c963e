package constvars

const (
	// RegexTimeHHMM matches a 24-hour wall-clock time such as "09:00" or "23:30".
	RegexTimeHHMM = `^([01]\d|2[0-3]):([0-5]\d)$`

	RegexEmail = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
)
