package cli

import (
	"context"
	"errors"

	"github.com/sho-luv/cloudlamma/internal/cloudflare"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// domainsAction lists the zones the configured API token can see.
func domainsAction(ctx context.Context, o *Options) error {
	a, err := buildApp(o)
	if err != nil {
		return err
	}

	client := cloudflare.NewClient(a.cfg, a.log)
	zones, err := client.Zones(ctx)
	switch {
	case errors.Is(err, cloudflare.ErrNoToken):
		ui.Warnf("CLOUDFLARE_API_TOKEN is not set.")
		ui.Plainf("Set it to list your Cloudflare domains; temporary trycloudflare.com URLs work without it.\n")
		return nil
	case errors.Is(err, cloudflare.ErrAuth):
		ui.Errorf("Authentication failed. Please check your CLOUDFLARE_API_TOKEN.")
		return err
	case errors.Is(err, cloudflare.ErrForbidden):
		ui.Errorf("Access denied. Your token may lack the Zone:Read permission.")
		return err
	case err != nil:
		return err
	}

	if len(zones) == 0 {
		ui.Infof("No domains found in your Cloudflare account.")
		return nil
	}
	ui.Infof("Domains in your Cloudflare account:")
	for _, z := range zones {
		ui.Plainf(" - %s\n", z)
	}
	return nil
}
