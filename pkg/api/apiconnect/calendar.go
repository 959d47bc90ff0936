package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/pkg/api"
)

// CalendarServiceHandler is implemented by the backend calendar service.
type CalendarServiceHandler interface {
	ListEvents(context.Context, *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	UpdateEvent(context.Context, *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error)
}

// NewCalendarServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCalendarServiceHandler(svc CalendarServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	listEvents := connect.NewUnaryHandler(api.CalendarServiceListEventsProcedure, svc.ListEvents, opt)
	createEvent := connect.NewUnaryHandler(api.CalendarServiceCreateEventProcedure, svc.CreateEvent, opt)
	updateEvent := connect.NewUnaryHandler(api.CalendarServiceUpdateEventProcedure, svc.UpdateEvent, opt)
	deleteEvent := connect.NewUnaryHandler(api.CalendarServiceDeleteEventProcedure, svc.DeleteEvent, opt)

	return "/" + api.CalendarServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.CalendarServiceListEventsProcedure:
			listEvents.ServeHTTP(w, r)
		case api.CalendarServiceCreateEventProcedure:
			createEvent.ServeHTTP(w, r)
		case api.CalendarServiceUpdateEventProcedure:
			updateEvent.ServeHTTP(w, r)
		case api.CalendarServiceDeleteEventProcedure:
			deleteEvent.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CalendarServiceClient is a client for the stride.v1.CalendarService service.
type CalendarServiceClient interface {
	ListEvents(context.Context, *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	UpdateEvent(context.Context, *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error)
}

// NewCalendarServiceClient constructs a client for the stride.v1.CalendarService service.
func NewCalendarServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CalendarServiceClient {
	baseURL = trimBase(baseURL)
	opt := clientOptions(opts)
	return &calendarServiceClient{
		listEvents:  connect.NewClient[api.ListEventsRequest, api.ListEventsResponse](httpClient, baseURL+api.CalendarServiceListEventsProcedure, opt),
		createEvent: connect.NewClient[api.CreateEventRequest, api.CreateEventResponse](httpClient, baseURL+api.CalendarServiceCreateEventProcedure, opt),
		updateEvent: connect.NewClient[api.UpdateEventRequest, api.UpdateEventResponse](httpClient, baseURL+api.CalendarServiceUpdateEventProcedure, opt),
		deleteEvent: connect.NewClient[api.DeleteEventRequest, api.DeleteEventResponse](httpClient, baseURL+api.CalendarServiceDeleteEventProcedure, opt),
	}
}

type calendarServiceClient struct {
	listEvents  *connect.Client[api.ListEventsRequest, api.ListEventsResponse]
	createEvent *connect.Client[api.CreateEventRequest, api.CreateEventResponse]
	updateEvent *connect.Client[api.UpdateEventRequest, api.UpdateEventResponse]
	deleteEvent *connect.Client[api.DeleteEventRequest, api.DeleteEventResponse]
}

func (c *calendarServiceClient) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *calendarServiceClient) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *calendarServiceClient) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	return c.updateEvent.CallUnary(ctx, req)
}

func (c *calendarServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	return c.deleteEvent.CallUnary(ctx, req)
}
