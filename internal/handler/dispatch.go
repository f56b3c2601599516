package handler

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/response"
	"github.com/hanseilab/hansei-backend/internal/service"
	"github.com/hanseilab/hansei-backend/internal/validator"
	"github.com/rs/zerolog"
)

// Envelope is the request body of the single action endpoint.
type Envelope struct {
	Action  string            `json:"action"`
	Payload json.RawMessage   `json:"payload"`
	Auth    model.AuthContext `json:"auth"`
}

// ActionFunc executes one action against an authenticated caller.
type ActionFunc func(auth model.AuthContext, payload json.RawMessage) (interface{}, error)

type action struct {
	fn    ActionFunc
	roles []model.Role
}

// Dispatcher routes action names to handlers. Every action except login
// passes the authorization gate first; errors of any kind are flattened to
// the {error} envelope at this single boundary.
type Dispatcher struct {
	auth    *service.AuthService
	login   ActionFunc
	actions map[string]action
	log     zerolog.Logger
}

// NewDispatcher wires the action table.
func NewDispatcher(
	authSvc *service.AuthService,
	authHandler *AuthHandler,
	student *StudentHandler,
	teacher *TeacherHandler,
	log zerolog.Logger,
) *Dispatcher {
	d := &Dispatcher{
		auth:    authSvc,
		login:   authHandler.Login,
		actions: make(map[string]action),
		log:     log.With().Str("component", "dispatcher").Logger(),
	}

	d.register("student/getQuestions", student.GetQuestions, model.RoleStudent)
	d.register("student/submitReflection", student.SubmitReflection, model.RoleStudent)
	d.register("student/getHistory", student.GetHistory, model.RoleStudent)
	d.register("student/getUnreadFeedback", student.GetUnreadFeedback, model.RoleStudent)
	d.register("student/markFeedbackRead", student.MarkFeedbackRead, model.RoleStudent)

	d.register("teacher/getDashboard", teacher.GetDashboard, model.RoleTeacher)
	d.register("teacher/getStudentCard", teacher.GetStudentCard, model.RoleTeacher)
	d.register("teacher/saveFeedback", teacher.SaveFeedback, model.RoleTeacher)
	d.register("teacher/getCodes", teacher.GetCodes, model.RoleTeacher)
	d.register("teacher/setNextQuestions", teacher.SetNextQuestions, model.RoleTeacher)

	return d
}

func (d *Dispatcher) register(name string, fn ActionFunc, roles ...model.Role) {
	d.actions[name] = action{fn: fn, roles: roles}
}

// Handle is the POST handler of the action endpoint. The body is read raw:
// the browser client sends text/plain to dodge the CORS preflight, so
// content-type negotiation is useless here.
func (d *Dispatcher) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, response.New(response.ErrValidation, "Invalid request body"))
		return
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// A parse failure is indistinguishable from a domain error on the
		// wire.
		response.Error(c, response.New(response.ErrValidation, "Invalid request body"))
		return
	}

	if env.Action == "login" {
		result, err := d.login(env.Auth, env.Payload)
		d.respond(c, env, result, err)
		return
	}

	act, known := d.actions[env.Action]
	if !d.auth.Authorize(env.Auth, act.roles...) {
		response.Error(c, response.NewCode(response.ErrAuthRequired))
		return
	}
	if !known {
		response.Error(c, response.New(response.ErrUnknownAction, "Unknown action: "+env.Action))
		return
	}

	result, err := act.fn(env.Auth, env.Payload)
	d.respond(c, env, result, err)
}

func (d *Dispatcher) respond(c *gin.Context, env Envelope, result interface{}, err error) {
	if err != nil {
		d.log.Debug().Err(err).Str("action", env.Action).Msg("action failed")
		response.Error(c, err)
		return
	}
	response.Result(c, result)
}

// bind decodes an action payload and validates it. An empty payload decodes
// as an empty object so required-field messages stay uniform.
func bind(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return response.New(response.ErrValidation, "Invalid payload")
	}
	if fields := validator.Struct(dst); fields != nil {
		return response.New(response.ErrValidation, formatFieldErrors(fields))
	}
	return nil
}

func formatFieldErrors(fields map[string]string) string {
	msgs := make([]string, 0, len(fields))
	for _, msg := range fields {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return "Validation failed: " + strings.Join(msgs, "; ")
}
