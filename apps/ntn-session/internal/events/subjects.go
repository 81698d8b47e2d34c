package events

// モデムイベントのサブジェクト末尾（<prefix>.modem.<name>）
const (
	SubjectModemState   = "state"
	SubjectProvision    = "provision"
	SubjectDatagram     = "datagram"
	SubjectCapabilities = "capabilities"
	SubjectSignal       = "signal"
	SubjectRadio        = "radio"
	SubjectLink         = "link"
)

// ModemSubject は<prefix>.modem.<name>を返す。
func ModemSubject(prefix, name string) string {
	return prefix + ".modem." + name
}

// SessionStateSubject はセッション状態の配信先<prefix>.session.stateを返す。
func SessionStateSubject(prefix string) string {
	return prefix + ".session.state"
}
