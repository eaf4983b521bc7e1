package notify

// RelayCommand is a Command backed by plain functions.
type RelayCommand struct {
	execute    func()
	canExecute func() bool

	CanExecuteChanged Event[struct{}]
}

// NewRelayCommand returns a command running execute. A nil canExecute means
// the command is always executable.
func NewRelayCommand(execute func(), canExecute func() bool) *RelayCommand {
	return &RelayCommand{execute: execute, canExecute: canExecute}
}

// CanExecute reports whether Execute would run.
func (c *RelayCommand) CanExecute() bool {
	return c.canExecute == nil || c.canExecute()
}

// Execute runs the command if it is executable.
func (c *RelayCommand) Execute() {
	if c.execute != nil && c.CanExecute() {
		c.execute()
	}
}

// NotifyCanExecuteChanged raises CanExecuteChanged.
func (c *RelayCommand) NotifyCanExecuteChanged() {
	c.CanExecuteChanged.Raise(c, struct{}{})
}
