package notify

type PropertyChangedEventArgs struct{ PropertyName string }

type PropertyChangingEventArgs struct{ PropertyName string }

type Event[A any] struct{ handlers []func(any, A) }

type Notifier interface {
	PropertyChanged() *Event[PropertyChangedEventArgs]
	OnPropertyChanged(name string)
}

type ChangingNotifier interface {
	PropertyChanging() *Event[PropertyChangingEventArgs]
	OnPropertyChanging(name string)
}

type Command interface {
	NotifyCanExecuteChanged()
}

type Extension struct{ changed Event[PropertyChangedEventArgs] }

func (x *Extension) Changed() *Event[PropertyChangedEventArgs] { return &x.changed }
