// Package api defines the Stride RPC surface: service and procedure names, the
// request/response messages exchanged over Connect, and the JSON codec they travel in.
//
// Messages are plain Go structs that embed the models types, so the same
// definitions are shared by the backend handlers and the device client.
package api

// Fully-qualified service names.
const (
	AuthServiceName     = "stride.v1.AuthService"
	WalletServiceName   = "stride.v1.WalletService"
	HealthServiceName   = "stride.v1.HealthService"
	TodoServiceName     = "stride.v1.TodoService"
	CalendarServiceName = "stride.v1.CalendarService"
)

// Procedure paths, in the form /<service>/<method>.
const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceLogoutProcedure         = "/" + AuthServiceName + "/Logout"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	WalletServiceGetWalletProcedure         = "/" + WalletServiceName + "/GetWallet"
	WalletServiceSaveWalletProcedure        = "/" + WalletServiceName + "/SaveWallet"
	WalletServiceListTransactionsProcedure  = "/" + WalletServiceName + "/ListTransactions"
	WalletServiceCreateTransactionProcedure = "/" + WalletServiceName + "/CreateTransaction"
	WalletServiceUpdateTransactionProcedure = "/" + WalletServiceName + "/UpdateTransaction"
	WalletServiceDeleteTransactionProcedure = "/" + WalletServiceName + "/DeleteTransaction"

	HealthServiceGetHealthProfileProcedure  = "/" + HealthServiceName + "/GetHealthProfile"
	HealthServiceSaveHealthProfileProcedure = "/" + HealthServiceName + "/SaveHealthProfile"
	HealthServiceListExercisesProcedure     = "/" + HealthServiceName + "/ListExercises"
	HealthServiceCreateExerciseProcedure    = "/" + HealthServiceName + "/CreateExercise"
	HealthServiceUpdateExerciseProcedure    = "/" + HealthServiceName + "/UpdateExercise"
	HealthServiceDeleteExerciseProcedure    = "/" + HealthServiceName + "/DeleteExercise"

	TodoServiceListTodosProcedure  = "/" + TodoServiceName + "/ListTodos"
	TodoServiceCreateTodoProcedure = "/" + TodoServiceName + "/CreateTodo"
	TodoServiceUpdateTodoProcedure = "/" + TodoServiceName + "/UpdateTodo"
	TodoServiceDeleteTodoProcedure = "/" + TodoServiceName + "/DeleteTodo"

	CalendarServiceListEventsProcedure  = "/" + CalendarServiceName + "/ListEvents"
	CalendarServiceCreateEventProcedure = "/" + CalendarServiceName + "/CreateEvent"
	CalendarServiceUpdateEventProcedure = "/" + CalendarServiceName + "/UpdateEvent"
	CalendarServiceDeleteEventProcedure = "/" + CalendarServiceName + "/DeleteEvent"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}
