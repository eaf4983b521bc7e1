package app

// +notify:observable
type Empty struct{} // want `NOTIFY001`
