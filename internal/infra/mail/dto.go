package mail

type LeadAlertData struct {
	LeadEmail string
	Stage     string
	Time      string
}
