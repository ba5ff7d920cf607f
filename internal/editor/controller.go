package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/festify/internal/models"
	"github.com/desertthunder/festify/internal/services"
	"github.com/desertthunder/festify/internal/shared"
)

// Navigation targets.
const (
	PathHome      = "/"
	PathArtists   = "/artists"
	PathNewArtist = "/new-artist"
)

const (
	loadFallbackMsg   = "error loading the artist"
	submitFallbackMsg = "unknown error"
)

var (
	ErrInvalidForm    = errors.New("form is not valid")
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrDisposed       = errors.New("editing session closed")
	ErrMissingID      = errors.New("no artist id")
	ErrInvalidField   = errors.New("invalid field value")
	ErrLoadFailed     = errors.New("artist could not be loaded")
)

// ArtistGetter, ArtistCreator and ArtistUpdater are the parts of [services.ArtistService] the controller uses.
type ArtistGetter interface {
	GetArtist(ctx context.Context, id string) (*models.Artist, error)
}

type ArtistCreator interface {
	CreateArtist(ctx context.Context, req models.ArtistRequest) (*models.Artist, error)
}

type ArtistUpdater interface {
	UpdateArtist(ctx context.Context, id string, req models.ArtistRequest) (*models.Artist, error)
}

// ArtistStore combines [ArtistGetter], [ArtistCreator] and [ArtistUpdater].
type ArtistStore interface {
	ArtistGetter
	ArtistCreator
	ArtistUpdater
}

// Notifier shows non-blocking feedback to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// Options contains the collaborators of a [Controller].
type Options struct {
	Service   ArtistStore
	Notifier  Notifier
	Navigator Navigator
	Logger    *log.Logger
}

// Controller owns the editing session of one artist: load, edit, reset and submit.
// A controller from [NewCreateController] starts from the default form and submits a new artist.
//
// It is safe for concurrent use; service calls run without holding the lock.
type Controller struct {
	id        string
	create    bool
	service   ArtistStore
	notifier  Notifier
	navigator Navigator
	logger    *log.Logger

	mu         sync.Mutex
	form       ArtistForm
	original   ArtistForm
	valid      bool
	loaded     bool
	loadErr    string
	submitting bool
	disposed   bool
}

// NewController mounts a controller for the artist id taken from the route.
func NewController(id string, opts Options) *Controller {
	return newController(id, false, opts)
}

// NewCreateController mounts a controller for a new artist. Load is a no-op and Submit creates.
func NewCreateController(opts Options) *Controller {
	return newController("", true, opts)
}

func newController(id string, create bool, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Navigator == nil {
		opts.Navigator = nopNavigator{}
	}

	label := id
	if create {
		label = "new"
	}

	form := DefaultArtistForm()
	return &Controller{
		id:        id,
		create:    create,
		service:   opts.Service,
		notifier:  opts.Notifier,
		navigator: opts.Navigator,
		logger:    shared.WithLogger(opts.Logger, "artist", label),
		form:      form,
		original:  form.Clone(),
		valid:     form.Valid(),
	}
}

// Load fetches the artist and seeds both the form and the snapshot.
//
// A failed load is terminal: the error message is kept in [Controller.LoadError]
// and the returned error wraps [ErrLoadFailed]. Without an id Load does nothing.
func (c *Controller) Load(ctx context.Context) error {
	if c.id == "" {
		return nil
	}
	if c.isDisposed() {
		return ErrDisposed
	}

	artist, err := c.service.GetArtist(ctx, c.id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		c.logger.Debug("dropping load result for closed session")
		return ErrDisposed
	}

	if err == nil && (artist == nil || artist.ID == "") {
		err = &services.APIError{Detail: loadFallbackMsg}
	}

	if err != nil {
		c.loadErr = loadMessage(err)
		c.logger.Error("failed to load artist", "err", err)
		return fmt.Errorf("%w: %s", ErrLoadFailed, c.loadErr)
	}

	c.form = FormFromArtist(*artist)
	c.original = c.form.Clone()
	c.loaded = true
	c.loadErr = ""
	c.computeValidity()

	c.logger.Debug("artist loaded", "name", artist.Name)
	return nil
}

// UpdateField merges one field into the form and recomputes validity.
//
// Listeners accepts an empty string (the empty value) or a non-negative integer;
// anything else is rejected and the previous value kept. Country must be a known ISO code.
func (c *Controller) UpdateField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}

	switch field {
	case FieldName:
		c.form.Name = value
	case FieldGenres:
		c.form.Genres = value
	case FieldBiography:
		c.form.Biography = value
	case FieldStatus:
		c.form.Status = models.ParseArtistStatus(value)
	case FieldCountry:
		country, ok := models.LookupCountry(value)
		if !ok {
			return fmt.Errorf("%w: unknown country %q", ErrInvalidField, value)
		}
		c.form.Country = country.Code
	case FieldListeners:
		listeners, err := parseListeners(value)
		if err != nil {
			return err
		}
		c.form.Listeners = listeners
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidField, field)
	}

	c.computeValidity()
	return nil
}

// Valid reports whether the current form may be submitted.
func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid
}

// Reset restores the form to the snapshot taken at load time.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.form = c.original.Clone()
	c.computeValidity()
}

// Submit sends the form to the API.
//
// Invalid forms, concurrent submissions and closed sessions are refused without calling the service.
// Service failures are reported through the [Notifier] and returned; the form is left as it was.
// On success the user is notified and sent to the artist list. In create mode the payload is POSTed
// instead of replacing the artist.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.disposed:
		c.mu.Unlock()
		return ErrDisposed
	case c.id == "" && !c.create:
		c.mu.Unlock()
		return ErrMissingID
	case !c.valid:
		c.mu.Unlock()
		return ErrInvalidForm
	case c.submitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	req := c.form.Request()
	c.mu.Unlock()

	var (
		artist *models.Artist
		err    error
		action = "updated"
	)
	if c.create {
		action = "created"
		artist, err = c.service.CreateArtist(ctx, req)
	} else {
		artist, err = c.service.UpdateArtist(ctx, c.id, req)
	}

	c.mu.Lock()
	c.submitting = false
	disposed := c.disposed
	c.mu.Unlock()

	if disposed {
		c.logger.Debug("dropping submit result for closed session")
		return ErrDisposed
	}

	if err == nil && (artist == nil || artist.ID == "") {
		err = &services.APIError{Detail: submitFallbackMsg}
	}

	if err != nil {
		msg := submitMessage(err)
		c.logger.Warn("artist submit failed", "create", c.create, "err", err)
		c.notifier.Failure(msg)
		return err
	}

	c.logger.Info("artist "+action, "id", artist.ID)
	c.notifier.Success(fmt.Sprintf("artist with id %s %s successfully", artist.ID, action))
	c.navigator.Navigate(PathArtists)
	return nil
}

// Dispose closes the session. Results of requests still in flight are ignored.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
}

// ID returns the route id the controller edits.
func (c *Controller) ID() string { return c.id }

// Creating reports whether the controller submits a new artist.
func (c *Controller) Creating() bool { return c.create }

// Form returns a copy of the current form.
func (c *Controller) Form() ArtistForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Original returns a copy of the snapshot taken at load time.
func (c *Controller) Original() ArtistForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original.Clone()
}

// Dirty reports whether the form differs from the snapshot.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.form.Equal(c.original)
}

// Loaded reports whether the artist was fetched successfully.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Failed reports whether loading failed; the session can only be left.
func (c *Controller) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr != ""
}

// LoadError returns the message of a failed load.
func (c *Controller) LoadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Submitting reports whether an update is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// CanSubmit reports whether the save action should be enabled.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid && !c.submitting && !c.disposed && c.loadErr == ""
}

func (c *Controller) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// computeValidity must be called with mu held.
func (c *Controller) computeValidity() {
	c.valid = c.form.Valid()
}

func parseListeners(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: listeners must be a non-negative integer, got %q", ErrInvalidField, value)
	}
	return &n, nil
}

func loadMessage(err error) string {
	if apiErr, ok := services.AsAPIError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return loadFallbackMsg
}

func submitMessage(err error) string {
	if apiErr, ok := services.AsAPIError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return submitFallbackMsg
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
