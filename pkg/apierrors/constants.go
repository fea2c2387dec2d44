package apierrors

const (
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskFieldsRequired = "taskFieldsRequired"
	MsgInvalidTaskStatus  = "invalidTaskStatus"
	MsgTaskNotFound       = "taskNotFound"
	MsgTaskDeleted        = "taskDeleted"
	MsgFailListTask       = "failListTasks"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"

	MsgInvalidUserPayload = "invalidUserPayload"
	MsgInvalidEmail       = "invalidEmail"
	MsgWeakPassword       = "weakPassword"
	MsgPasswordTooLong    = "passwordTooLong"
	MsgUserExists         = "userExists"
	MsgInvalidCredentials = "invalidCredentials"
	MsgMissingToken       = "missingToken"
	MsgUnauthorized       = "unauthorized"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"
	MsgFailProfile        = "failProfile"

	MsgTooManyRequests  = "tooManyRequests"
	MsgEndpointNotFound = "endpointNotFound"
)
