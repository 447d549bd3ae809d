package formwizard

import "errors"

var (
	// Configuration errors, surfaced from New/NewNamedURL.
	ErrNoSteps          = errors.New("formwizard: at least one step is required")
	ErrDuplicateStep    = errors.New("formwizard: duplicate step name")
	ErrDuplicateTag     = errors.New("formwizard: duplicate form tag in step")
	ErrNoFileStorage    = errors.New("formwizard: file storage required to handle file fields")
	ErrNoRenderer       = errors.New("formwizard: no renderer configured")
	ErrNoRedirector     = errors.New("formwizard: no redirector configured")
	ErrNoDoneFunc       = errors.New("formwizard: no done callback configured")
	ErrNoURLName        = errors.New("formwizard: url name is required to resolve step addresses")
	ErrReservedStepName = errors.New("formwizard: step name is reserved for the done view")

	// Request errors, surfaced from the handle methods.
	ErrNoStorage          = errors.New("formwizard: no storage bound to request")
	ErrNoActiveSteps      = errors.New("formwizard: no step is active for this request")
	ErrUnknownStep        = errors.New("formwizard: unknown step")
	ErrManagementTampered = errors.New("formwizard: management data is missing or has been tampered")
)
