package worker

type Request struct {
	Operation     Operation
	Topic         string
	Devices       []string
	CorrelationID string
}
