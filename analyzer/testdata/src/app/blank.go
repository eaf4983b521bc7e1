package app

import _ "github.com/teranos/notifygen/notify"

// +notify:observable
type Blank struct{} // want `NOTIFY001`
