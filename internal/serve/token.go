package serve

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/dtnitsch/meta-auditor/internal/common"
	"github.com/dtnitsch/meta-auditor/models"
	"github.com/urfave/cli/v2"
)

// TokenFlags are the token command flags.
func TokenFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "configured user the token is bound to"},
		&cli.StringFlag{Name: "secret", Usage: "installer token signing key"},
		&cli.DurationFlag{Name: "token-ttl", Usage: "token lifetime"},
		&cli.StringFlag{Name: "base-url", Value: "http://localhost:8080/", Usage: "server URL to build the install link from"},
	}
}

// TokenAction prints a signed installer link for a configured user. The
// server must run with the same secret for the link to verify.
func TokenAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Config.Secret == "" {
		return errors.New("a token secret is required: set META_AUDITOR_SECRET or --secret")
	}
	user, ok := env.Config.FindUser(c.String("user"))
	if !ok {
		return fmt.Errorf("unknown user %q", c.String("user"))
	}

	installer, err := common.NewInstaller(env, []byte(env.Config.Secret))
	if err != nil {
		return err
	}
	token, err := installer.InstallToken(user)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	base, err := url.Parse(c.String("base-url"))
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	link := base.JoinPath("install-importer")
	link.RawQuery = url.Values{"_wpnonce": {token}}.Encode()
	fmt.Fprintln(c.App.Writer, link.String())
	if !user.Can(models.CapInstallPlugins) {
		env.Logger.Warn("user cannot install plugins; the link will be refused")
	}
	return nil
}
