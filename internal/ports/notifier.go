package ports

type Notifier interface {
	Success(message string)
	Error(message string)
}

type NopNotifier struct{}

func (NopNotifier) Success(string) {}

func (NopNotifier) Error(string) {}
