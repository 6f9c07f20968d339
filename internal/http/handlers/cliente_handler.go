// Cliente HTTP handlers.
//
// This file exposes the REST endpoints for the cliente resource:
//   - POST  /clientes        (create)
//   - GET   /clientes        (list, ETag support)
//   - GET   /clientes/{id}   (fetch)
//   - PUT   /clientes/{id}   (partial update; PATCH routes here too)
//
// Handlers are transport-thin: they decode input, call the application
// service, and translate results into HTTP responses. After a successful
// write they re-fetch the canonical stored record before presenting it.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/marvera/go-clientes-backend/internal/domain"
	"github.com/marvera/go-clientes-backend/internal/i18n"
	"github.com/marvera/go-clientes-backend/internal/repo"
	"github.com/marvera/go-clientes-backend/internal/services"
)

// ClienteService defines the cliente operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ClienteService interface {
	// Create validates the payload and persists a new cliente.
	Create(ctx context.Context, in services.CreateClienteInput) (*domain.Cliente, error)
	// Update validates the partial payload and applies it to an existing cliente.
	Update(ctx context.Context, id string, in services.UpdateClienteInput) (*domain.Cliente, error)
	// Get fetches a cliente by id.
	Get(ctx context.Context, id string) (*domain.Cliente, error)
	// List returns all clientes.
	List(ctx context.Context) ([]domain.Cliente, error)
}

// Handlers groups the HTTP endpoints for the cliente resource.
type Handlers struct {
	svc ClienteService
}

// New constructs a Handlers instance bound to the given service.
func New(svc ClienteService) *Handlers {
	return &Handlers{svc: svc}
}

// locale resolves the response locale from the Accept-Language header.
func locale(c *gin.Context) language.Tag {
	return i18n.Match(c.GetHeader("Accept-Language"))
}

//
// DTOs
//

// ClienteRequest is the JSON payload for creating or updating a cliente.
// Every field is a pointer so the handlers can tell an absent key from an
// empty value; the rule sets decide which fields are required per path.
type ClienteRequest struct {
	TipoDocumento   *string `json:"tipo_documento" example:"RUC"`
	NumeroDocumento *string `json:"numero_documento" example:"2012345678"`
	RazonSocial     *string `json:"razon_social" example:"Acme S.A."`
	Direccion       *string `json:"direccion" example:"Av. Siempre Viva 123"`
	Telefono        *string `json:"telefono" example:"555-1234"`
	Email           *string `json:"email" example:"acme@example.com"`
}

//
// Handlers
//

// CreateCliente godoc
// @ID          createCliente
// @Summary     Create a cliente
// @Description Validates the payload and persists a new cliente, returning the stored record.
// @Tags        Clientes
// @Accept      json
// @Produce     json
//
// @Param       Accept-Language  header  string  false "Response locale (es default)"  example(es-PE)
// @Param       body             body    handlers.ClienteRequest  true  "Create payload"
//
// @Success     201  {object}  handlers.ClienteResource
// @Failure     400  {object}  handlers.ErrorResponse             "Malformed JSON"
// @Failure     409  {object}  handlers.ErrorResponse             "Concurrent duplicate"
// @Failure     422  {object}  handlers.ValidationFailedResponse  "Validation errors"
// @Failure     500  {object}  handlers.ErrorResponse             "Internal error"
// @Router      /clientes [post]
func (h *Handlers) CreateCliente(c *gin.Context) {
	var req ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), services.CreateClienteInput{
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		RazonSocial:     req.RazonSocial,
		Direccion:       req.Direccion,
		Telefono:        req.Telefono,
		Email:           req.Email,
	})
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			validationFailed(c, locale(c), ve)
		case errors.Is(err, services.ErrDuplicateCliente):
			fail(c, http.StatusConflict, ErrCodeConflict, i18n.Message(locale(c), "cliente.duplicate", ""))
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}

	// Present the canonical stored record, not the in-memory entity.
	stored, err := h.svc.Get(c.Request.Context(), created.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, NewClienteResource(stored))
}

// ListClientes godoc
// @ID          listClientes
// @Summary     List clientes
// @Description Returns every stored cliente. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Clientes
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {array}  handlers.ClienteResource
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /clientes [get]
func (h *Handlers) ListClientes(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.svc.(*services.ClienteService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ClientesStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"clientes:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.svc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, NewClienteCollection(items))
}

// GetCliente godoc
// @ID          getCliente
// @Summary     Fetch a cliente
// @Description Returns a single cliente by id.
// @Tags        Clientes
// @Produce     json
//
// @Param       id  path  string  true  "Cliente ID (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     200  {object} handlers.ClienteResource
// @Failure     404  {object} handlers.NotFoundResponse "Cliente not found"
// @Failure     500  {object} handlers.ErrorResponse    "Internal error"
// @Router      /clientes/{id} [get]
func (h *Handlers) GetCliente(c *gin.Context) {
	cliente, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrClienteNotFound) {
			notFound(c, locale(c))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, NewClienteResource(cliente))
}

// UpdateCliente godoc
// @ID          updateCliente
// @Summary     Update a cliente
// @Description Applies a partial update to an existing cliente; omitted fields keep their value.
// @Tags        Clientes
// @Accept      json
// @Produce     json
//
// @Param       Accept-Language  header  string  false "Response locale (es default)"  example(es-PE)
// @Param       id               path    string  true  "Cliente ID (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
// @Param       body             body    handlers.ClienteRequest  true  "Partial update payload"
//
// @Success     200  {object} handlers.ClienteResource
// @Failure     400  {object} handlers.ErrorResponse             "Malformed JSON"
// @Failure     404  {object} handlers.NotFoundResponse          "Cliente not found"
// @Failure     409  {object} handlers.ErrorResponse             "Concurrent duplicate"
// @Failure     422  {object} handlers.ValidationFailedResponse  "Validation errors"
// @Failure     500  {object} handlers.ErrorResponse             "Internal error"
// @Router      /clientes/{id} [put]
func (h *Handlers) UpdateCliente(c *gin.Context) {
	id := c.Param("id")

	var req ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	_, err := h.svc.Update(c.Request.Context(), id, services.UpdateClienteInput{
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		RazonSocial:     req.RazonSocial,
		Direccion:       req.Direccion,
		Telefono:        req.Telefono,
		Email:           req.Email,
	})
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrClienteNotFound):
			notFound(c, locale(c))
		case errors.As(err, &ve):
			validationFailed(c, locale(c), ve)
		case errors.Is(err, services.ErrDuplicateCliente):
			fail(c, http.StatusConflict, ErrCodeConflict, i18n.Message(locale(c), "cliente.duplicate", ""))
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	stored, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, NewClienteResource(stored))
}
