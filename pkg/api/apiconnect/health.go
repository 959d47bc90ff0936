package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/pkg/api"
)

// HealthServiceHandler is implemented by the backend health service.
type HealthServiceHandler interface {
	GetHealthProfile(context.Context, *connect.Request[api.GetHealthProfileRequest]) (*connect.Response[api.GetHealthProfileResponse], error)
	SaveHealthProfile(context.Context, *connect.Request[api.SaveHealthProfileRequest]) (*connect.Response[api.SaveHealthProfileResponse], error)
	ListExercises(context.Context, *connect.Request[api.ListExercisesRequest]) (*connect.Response[api.ListExercisesResponse], error)
	CreateExercise(context.Context, *connect.Request[api.CreateExerciseRequest]) (*connect.Response[api.CreateExerciseResponse], error)
	UpdateExercise(context.Context, *connect.Request[api.UpdateExerciseRequest]) (*connect.Response[api.UpdateExerciseResponse], error)
	DeleteExercise(context.Context, *connect.Request[api.DeleteExerciseRequest]) (*connect.Response[api.DeleteExerciseResponse], error)
}

// NewHealthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewHealthServiceHandler(svc HealthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	getHealthProfile := connect.NewUnaryHandler(api.HealthServiceGetHealthProfileProcedure, svc.GetHealthProfile, opt)
	saveHealthProfile := connect.NewUnaryHandler(api.HealthServiceSaveHealthProfileProcedure, svc.SaveHealthProfile, opt)
	listExercises := connect.NewUnaryHandler(api.HealthServiceListExercisesProcedure, svc.ListExercises, opt)
	createExercise := connect.NewUnaryHandler(api.HealthServiceCreateExerciseProcedure, svc.CreateExercise, opt)
	updateExercise := connect.NewUnaryHandler(api.HealthServiceUpdateExerciseProcedure, svc.UpdateExercise, opt)
	deleteExercise := connect.NewUnaryHandler(api.HealthServiceDeleteExerciseProcedure, svc.DeleteExercise, opt)

	return "/" + api.HealthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.HealthServiceGetHealthProfileProcedure:
			getHealthProfile.ServeHTTP(w, r)
		case api.HealthServiceSaveHealthProfileProcedure:
			saveHealthProfile.ServeHTTP(w, r)
		case api.HealthServiceListExercisesProcedure:
			listExercises.ServeHTTP(w, r)
		case api.HealthServiceCreateExerciseProcedure:
			createExercise.ServeHTTP(w, r)
		case api.HealthServiceUpdateExerciseProcedure:
			updateExercise.ServeHTTP(w, r)
		case api.HealthServiceDeleteExerciseProcedure:
			deleteExercise.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// HealthServiceClient is a client for the stride.v1.HealthService service.
type HealthServiceClient interface {
	GetHealthProfile(context.Context, *connect.Request[api.GetHealthProfileRequest]) (*connect.Response[api.GetHealthProfileResponse], error)
	SaveHealthProfile(context.Context, *connect.Request[api.SaveHealthProfileRequest]) (*connect.Response[api.SaveHealthProfileResponse], error)
	ListExercises(context.Context, *connect.Request[api.ListExercisesRequest]) (*connect.Response[api.ListExercisesResponse], error)
	CreateExercise(context.Context, *connect.Request[api.CreateExerciseRequest]) (*connect.Response[api.CreateExerciseResponse], error)
	UpdateExercise(context.Context, *connect.Request[api.UpdateExerciseRequest]) (*connect.Response[api.UpdateExerciseResponse], error)
	DeleteExercise(context.Context, *connect.Request[api.DeleteExerciseRequest]) (*connect.Response[api.DeleteExerciseResponse], error)
}

// NewHealthServiceClient constructs a client for the stride.v1.HealthService service.
func NewHealthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HealthServiceClient {
	baseURL = trimBase(baseURL)
	opt := clientOptions(opts)
	return &healthServiceClient{
		getHealthProfile:  connect.NewClient[api.GetHealthProfileRequest, api.GetHealthProfileResponse](httpClient, baseURL+api.HealthServiceGetHealthProfileProcedure, opt),
		saveHealthProfile: connect.NewClient[api.SaveHealthProfileRequest, api.SaveHealthProfileResponse](httpClient, baseURL+api.HealthServiceSaveHealthProfileProcedure, opt),
		listExercises:     connect.NewClient[api.ListExercisesRequest, api.ListExercisesResponse](httpClient, baseURL+api.HealthServiceListExercisesProcedure, opt),
		createExercise:    connect.NewClient[api.CreateExerciseRequest, api.CreateExerciseResponse](httpClient, baseURL+api.HealthServiceCreateExerciseProcedure, opt),
		updateExercise:    connect.NewClient[api.UpdateExerciseRequest, api.UpdateExerciseResponse](httpClient, baseURL+api.HealthServiceUpdateExerciseProcedure, opt),
		deleteExercise:    connect.NewClient[api.DeleteExerciseRequest, api.DeleteExerciseResponse](httpClient, baseURL+api.HealthServiceDeleteExerciseProcedure, opt),
	}
}

type healthServiceClient struct {
	getHealthProfile  *connect.Client[api.GetHealthProfileRequest, api.GetHealthProfileResponse]
	saveHealthProfile *connect.Client[api.SaveHealthProfileRequest, api.SaveHealthProfileResponse]
	listExercises     *connect.Client[api.ListExercisesRequest, api.ListExercisesResponse]
	createExercise    *connect.Client[api.CreateExerciseRequest, api.CreateExerciseResponse]
	updateExercise    *connect.Client[api.UpdateExerciseRequest, api.UpdateExerciseResponse]
	deleteExercise    *connect.Client[api.DeleteExerciseRequest, api.DeleteExerciseResponse]
}

func (c *healthServiceClient) GetHealthProfile(ctx context.Context, req *connect.Request[api.GetHealthProfileRequest]) (*connect.Response[api.GetHealthProfileResponse], error) {
	return c.getHealthProfile.CallUnary(ctx, req)
}

func (c *healthServiceClient) SaveHealthProfile(ctx context.Context, req *connect.Request[api.SaveHealthProfileRequest]) (*connect.Response[api.SaveHealthProfileResponse], error) {
	return c.saveHealthProfile.CallUnary(ctx, req)
}

func (c *healthServiceClient) ListExercises(ctx context.Context, req *connect.Request[api.ListExercisesRequest]) (*connect.Response[api.ListExercisesResponse], error) {
	return c.listExercises.CallUnary(ctx, req)
}

func (c *healthServiceClient) CreateExercise(ctx context.Context, req *connect.Request[api.CreateExerciseRequest]) (*connect.Response[api.CreateExerciseResponse], error) {
	return c.createExercise.CallUnary(ctx, req)
}

func (c *healthServiceClient) UpdateExercise(ctx context.Context, req *connect.Request[api.UpdateExerciseRequest]) (*connect.Response[api.UpdateExerciseResponse], error) {
	return c.updateExercise.CallUnary(ctx, req)
}

func (c *healthServiceClient) DeleteExercise(ctx context.Context, req *connect.Request[api.DeleteExerciseRequest]) (*connect.Response[api.DeleteExerciseResponse], error) {
	return c.deleteExercise.CallUnary(ctx, req)
}
