package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/arcaives/internal/client/gateway"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/gate"
)

// describe turns a command error into the one-line notice shown to the user.
func describe(err error) string {
	var verr *common.ValidationError
	var rerr *gateway.RemoteError

	switch {
	case errors.Is(err, errUsage):
		return "Usage: " + strings.TrimPrefix(err.Error(), errUsage.Error()+": ")
	case errors.As(err, &verr):
		return "Invalid " + verr.Error()
	case errors.Is(err, gateway.ErrUnavailable):
		return "The gateway is unavailable. Try again later."
	case errors.Is(err, gate.ErrInsecureContext):
		return "Secure connection required: admin login needs an https or loopback gateway."
	case errors.Is(err, common.ErrPayloadTooLarge):
		return "File is too large."
	case errors.Is(err, common.ErrUnsupportedMediaType):
		return "File is not an image."
	case errors.As(err, &rerr):
		msg := rerr.Message
		if msg == "" {
			msg = http.StatusText(rerr.Status)
		}
		return fmt.Sprintf("The gateway refused the request (%d %s).", rerr.Status, msg)
	case errors.Is(err, common.ErrorUnauthorized):
		return "Admin login required. Run 'login' first."
	case errors.Is(err, common.ErrorNotFound):
		return "Not found."
	}
	return err.Error()
}
