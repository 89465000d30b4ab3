package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

func (app *Application) runEnforce(ctx context.Context, args []string) error {
	var target casdoorsdk.EnforceTarget
	fs := newFlagSet("enforce")
	fs.StringVar(&target.EnforcerID, "enforcer", "", "Enforcer id (org/name)")
	fs.StringVar(&target.PermissionID, "permission", "", "Permission id (org/name)")
	fs.StringVar(&target.ModelID, "model", "", "Model id (org/name)")
	fs.StringVar(&target.ResourceID, "resource", "", "Resource id (org/name)")
	fs.StringVar(&target.Owner, "owner", "", "Organization to evaluate in")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return fmt.Errorf("%w: enforce [flags] <sub> <obj> <act>", ErrUsage)
	}

	allowed, err := app.client.Enforce(ctx, target, casdoorsdk.CasbinRequest(fs.Args()))
	if err != nil {
		return err
	}
	return app.println(strconv.FormatBool(allowed))
}

func (app *Application) runSignInURL(_ context.Context, args []string) error {
	fs := newFlagSet("signin-url")
	withPKCE := fs.Bool("pkce", false, "Add a PKCE challenge and print the verifier")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return fmt.Errorf("%w: signin-url [-pkce] <redirect>", ErrUsage)
	}
	redirect := fs.Arg(0)

	if !*withPKCE {
		return app.println(app.client.SignInURL(redirect))
	}

	pkce, err := casdoorsdk.NewPKCE()
	if err != nil {
		return err
	}
	state, err := casdoorsdk.NewState()
	if err != nil {
		return err
	}
	if err := app.println(app.client.SignInURLWithPKCE(redirect, state, pkce)); err != nil {
		return err
	}
	return app.println("verifier: " + pkce.Verifier)
}

func (app *Application) runSignUpURL(_ context.Context, args []string) error {
	fs := newFlagSet("signup-url")
	password := fs.Bool("password", false, "Link to the password sign-up form")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return fmt.Errorf("%w: signup-url [-password] <redirect>", ErrUsage)
	}
	return app.println(app.client.SignUpURL(*password, fs.Arg(0)))
}

func (app *Application) runParseToken(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: parse-token <jwt>", ErrUsage)
	}

	claims, err := app.client.ParseJwtToken(args[0])
	if err != nil {
		return err
	}
	return app.printJSON(claims)
}

func (app *Application) runMfaCode(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: mfa-code <secret>", ErrUsage)
	}

	code, err := casdoorsdk.GenerateMfaPasscode(args[0], time.Now())
	if err != nil {
		return err
	}
	return app.println(code)
}

func (app *Application) runUpload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload")
	user := fs.String("user", "", "Uploading user (default: the organization)")
	tag := fs.String("tag", "", "Resource tag (default: the file name)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return fmt.Errorf("%w: upload [-user name] [-tag tag] <file> <fullFilePath>", ErrUsage)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	resource := &casdoorsdk.Resource{
		Owner:        app.cfg.Casdoor.OrganizationName,
		Name:         filepath.Base(fs.Arg(0)),
		User:         *user,
		Tag:          *tag,
		FullFilePath: fs.Arg(1),
	}

	fileURL, err := app.client.UploadResource(ctx, resource, f)
	if err != nil {
		return err
	}
	app.logger.Info("resource uploaded", "path", resource.FullFilePath, "url", fileURL)
	return app.println(fileURL)
}

func (app *Application) runIntrospect(ctx context.Context, args []string) error {
	fs := newFlagSet("introspect")
	hint := fs.String("hint", "", "token_type_hint, e.g. access_token")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return fmt.Errorf("%w: introspect [-hint type] <token>", ErrUsage)
	}

	info, err := app.client.Introspect(ctx, fs.Arg(0), *hint)
	if err != nil {
		return err
	}
	return app.printJSON(info)
}
