package ports

// Notifier surfaces the final outcome to the user (HUD, toast, console)
type Notifier interface {
	Success(message string)
	Failure(message string)
}
