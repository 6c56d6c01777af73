package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	licenserender "github.com/dlyog/dl-creator-cli/internal/adapters/render/license"
	"github.com/dlyog/dl-creator-cli/internal/application"
	"github.com/dlyog/dl-creator-cli/internal/domain"
)

func newLicenseCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Check, create and view your driving license",
	}

	cmd.AddCommand(newLicenseStatusCmd(app), newLicenseCreateCmd(app), newLicenseShowCmd(app))

	return cmd
}

func newLicenseStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether you have a license",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.router.Enter(domain.RouteLicenseDetails)
			if err != nil || !allowed {
				return err
			}

			licensePage := application.NewLicensePage(application.LicenseDetailsPage, app.resolver)
			defer licensePage.Unmount()
			if err := mountLicensePage(cmd, licensePage, asJSON); err != nil {
				return err
			}

			status := licensePage.Status()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), newStatusJSON(status))
			}

			line := status.State.String()
			if status.Degraded {
				line += " (license service unavailable)"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newLicenseShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your license details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.router.Enter(domain.RouteLicenseDetails)
			if err != nil || !allowed {
				return err
			}

			licensePage := application.NewLicensePage(application.LicenseDetailsPage, app.resolver)
			defer licensePage.Unmount()
			if err := mountLicensePage(cmd, licensePage, asJSON); err != nil {
				return err
			}

			if asJSON {
				status := licensePage.Status()
				if !status.Present() {
					return errors.New(licensePage.Notice())
				}
				return writeJSON(cmd.OutOrStdout(), newRecordJSON(*status.Record))
			}

			return app.router.write(cmd.OutOrStdout(), licensePageView(application.LicenseDetailsPage, app.session.GetSession(), licensePage))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newLicenseCreateCmd(app *app) *cobra.Command {
	var fields domain.LicenseFields

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Apply for a driving license",
		Long:  "Apply for a driving license. Each account can hold one license.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.router.Enter(domain.RouteCreateLicense)
			if err != nil || !allowed {
				return err
			}

			if fields.VehicleType != "" {
				canonical, err := canonicalVehicleType(fields.VehicleType)
				if err != nil {
					return err
				}
				fields.VehicleType = canonical
			}

			licensePage := application.NewLicensePage(application.CreateLicensePage, app.resolver)
			defer licensePage.Unmount()
			if err := mountLicensePage(cmd, licensePage, false); err != nil {
				return err
			}

			if licensePage.Status().Present() {
				if err := app.router.write(cmd.OutOrStdout(), licensePageView(application.CreateLicensePage, app.session.GetSession(), licensePage)); err != nil {
					return err
				}
				return fmt.Errorf("create license: %w", domain.ErrLicenseExists)
			}

			status, err := licensePage.Create(cmd.Context(), fields)
			if err != nil {
				return fmt.Errorf("create license: %w", err)
			}

			return app.router.write(cmd.OutOrStdout(), licenserender.View{
				Page:    licenserender.PageCreate,
				Session: app.session.GetSession(),
				Status:  status,
				Created: true,
			})
		},
	}

	cmd.Flags().StringVar(&fields.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&fields.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&fields.VehicleType, "vehicle-type", "", "Vehicle type: "+strings.Join(domain.VehicleTypes, ", "))
	cmd.Flags().StringVar(&fields.VehicleMake, "vehicle-make", "", "Vehicle make")
	cmd.Flags().StringVar(&fields.Address, "address", "", "Postal address")

	return cmd
}

func mountLicensePage(cmd *cobra.Command, licensePage *application.LicensePage, quiet bool) error {
	if quiet {
		licensePage.Mount(cmd.Context())
		return nil
	}
	_, err := mountWithSpinner(cmd.Context(), cmd.ErrOrStderr(), licensePage)
	return err
}

func canonicalVehicleType(value string) (string, error) {
	index := slices.IndexFunc(domain.VehicleTypes, func(known string) bool {
		return strings.EqualFold(known, strings.TrimSpace(value))
	})
	if index < 0 {
		return "", fmt.Errorf("unsupported vehicle type %q (want one of %s)", value, strings.Join(domain.VehicleTypes, ", "))
	}
	return domain.VehicleTypes[index], nil
}

type recordJSON struct {
	ID            int64  `json:"id,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	FullName      string `json:"fullName"`
	VehicleType   string `json:"vehicleType,omitempty"`
	VehicleMake   string `json:"vehicleMake,omitempty"`
	Address       string `json:"address,omitempty"`
	Status        string `json:"status,omitempty"`
	IssueDate     string `json:"issueDate,omitempty"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
}

type statusJSON struct {
	State    string      `json:"state"`
	Degraded bool        `json:"degraded"`
	License  *recordJSON `json:"license,omitempty"`
}

func newRecordJSON(record domain.LicenseRecord) recordJSON {
	return recordJSON{
		ID:            record.ID,
		LicenseNumber: record.LicenseNumber,
		FullName:      record.HolderName(),
		VehicleType:   record.VehicleType,
		VehicleMake:   record.VehicleMake,
		Address:       record.Address,
		Status:        record.Status,
		IssueDate:     formatJSONDate(record.IssueDate),
		ExpiryDate:    formatJSONDate(record.ExpiryDate),
	}
}

func newStatusJSON(status domain.LicenseStatus) statusJSON {
	out := statusJSON{State: status.State.String(), Degraded: status.Degraded}
	if status.Record != nil {
		record := newRecordJSON(*status.Record)
		out.License = &record
	}
	return out
}

func formatJSONDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(time.DateOnly)
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
