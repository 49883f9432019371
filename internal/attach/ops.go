package attach

// Op is a user operation dispatched by the menu layer, per the
// operation table in spec.md §4.8. Constant names mirror the
// originals so the dispatch table in session.go reads the same as the
// spec's table.
type Op int

const (
	OpNone Op = iota
	OpAttachViewMailcap
	OpAttachViewText
	OpDisplayHeaders
	OpViewAttach
	OpAttachCollapse
	OpForgetPassphrase
	OpExtractKeys
	OpCheckTraditional
	OpPrint
	OpPipe
	OpSave
	OpDelete
	OpUndelete
	OpResend
	OpBounce
	OpForward
	OpForwardToGroup
	OpFollowup
	OpReply
	OpGroupReply
	OpListReply
	OpEditType
	OpNextEntry
	OpPrevEntry
	OpMainNextUndeleted
	OpMainPrevUndeleted
	OpExit
)

// String gives each Op a readable name for logging.
func (o Op) String() string {
	switch o {
	case OpNone:
		return "NONE"
	case OpAttachViewMailcap:
		return "ATTACH_VIEW_MAILCAP"
	case OpAttachViewText:
		return "ATTACH_VIEW_TEXT"
	case OpDisplayHeaders:
		return "DISPLAY_HEADERS"
	case OpViewAttach:
		return "VIEW_ATTACH"
	case OpAttachCollapse:
		return "ATTACH_COLLAPSE"
	case OpForgetPassphrase:
		return "FORGET_PASSPHRASE"
	case OpExtractKeys:
		return "EXTRACT_KEYS"
	case OpCheckTraditional:
		return "CHECK_TRADITIONAL"
	case OpPrint:
		return "PRINT"
	case OpPipe:
		return "PIPE"
	case OpSave:
		return "SAVE"
	case OpDelete:
		return "DELETE"
	case OpUndelete:
		return "UNDELETE"
	case OpResend:
		return "RESEND"
	case OpBounce:
		return "BOUNCE"
	case OpForward:
		return "FORWARD"
	case OpForwardToGroup:
		return "FORWARD_TO_GROUP"
	case OpFollowup:
		return "FOLLOWUP"
	case OpReply:
		return "REPLY"
	case OpGroupReply:
		return "GROUP_REPLY"
	case OpListReply:
		return "LIST_REPLY"
	case OpEditType:
		return "EDIT_TYPE"
	case OpNextEntry:
		return "NEXT_ENTRY"
	case OpPrevEntry:
		return "PREV_ENTRY"
	case OpMainNextUndeleted:
		return "MAIN_NEXT_UNDELETED"
	case OpMainPrevUndeleted:
		return "MAIN_PREV_UNDELETED"
	case OpExit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// isComposeOp reports whether op is one of the send-pipeline handoffs
// that are disallowed in attach-message mode (spec.md §4.8).
func isComposeOp(op Op) bool {
	switch op {
	case OpResend, OpBounce, OpForward, OpForwardToGroup, OpFollowup, OpReply, OpGroupReply, OpListReply:
		return true
	default:
		return false
	}
}

// QuadOption is a four-way configuration value: yes / no / ask-yes /
// ask-no (GLOSSARY).
type QuadOption int

const (
	QuadNo QuadOption = iota
	QuadYes
	QuadAskNo
	QuadAskYes
)
