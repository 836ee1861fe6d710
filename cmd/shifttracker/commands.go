package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rbroggi/shifttracker/internal/actors/audit"
	"github.com/rbroggi/shifttracker/internal/actors/csvstore"
	"github.com/rbroggi/shifttracker/internal/actors/sqlite"
	"github.com/rbroggi/shifttracker/internal/config"
	"github.com/rbroggi/shifttracker/internal/core/model"
	"github.com/rbroggi/shifttracker/internal/core/ports"
	"github.com/rbroggi/shifttracker/internal/core/usecase"
	log "github.com/sirupsen/logrus"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shifttracker",
		Short:        "Record and review work shifts",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newRegisterCommand(),
		newLoginCommand(),
		newShiftCommand(),
	)

	return cmd
}

// app wires the configuration, the storage actor and the use-cases for one command
// invocation.
type app struct {
	users  *usecase.UserService
	shifts *usecase.ShiftService

	closers []func() error
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	a := &app{}

	var repository ports.Repository
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := sqlite.NewStore(sqlite.StoreArgs{Path: filepath.Join(cfg.DataDir, "shifttracker.db")})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		repository = store
	default:
		store, err := csvstore.NewStore(csvstore.StoreArgs{Dir: cfg.DataDir})
		if err != nil {
			return nil, fmt.Errorf("failed to open csv store: %w", err)
		}
		repository = store
	}

	var changes ports.ChangeHandler
	if cfg.AuditLog != "" {
		trail, err := audit.NewTrail(cfg.AuditLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit trail: %w", err)
		}
		a.closers = append(a.closers, trail.Close)
		changes = usecase.NewInformer(trail)
	}

	a.users = usecase.NewUserService(usecase.UserServiceArgs{Repository: repository, Changes: changes})
	a.shifts = usecase.NewShiftService(usecase.ShiftServiceArgs{Repository: repository, Changes: changes})
	return a, nil
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("error closing resource")
		}
	}
}

func newRegisterCommand() *cobra.Command {
	var name, surname, userID string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			_, err = a.users.Register(cmd.Context(), model.RegisterUserArgs{
				Name:    name,
				Surname: surname,
				ID:      userID,
			})
			if errors.Is(err, model.ErrDuplicateID) {
				return fmt.Errorf("this user id already exists, please choose a different one")
			}
			if err != nil {
				return err
			}

			fmt.Printf("Account created for user id %s.\n", userID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "first name (letters only)")
	cmd.Flags().StringVarP(&surname, "surname", "s", "", "surname (letters only)")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to register")
	return cmd
}

func newLoginCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check that a user id is registered",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.users.Login(cmd.Context(), model.LoginArgs{ID: userID})
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("invalid user id, please try again")
			}
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s.\n", res.Session.UserID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to log in with")
	return cmd
}

func newShiftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Manage shift records",
	}

	cmd.AddCommand(
		newShiftAddCommand(),
		newShiftListCommand(),
		newShiftDeleteCommand(),
	)

	return cmd
}

// login opens a session for the given id, translating an unknown id into a friendly
// message. Shift operations always re-check the id, as the login form did.
func login(a *app, cmd *cobra.Command, userID string) (model.Session, error) {
	res, err := a.users.Login(cmd.Context(), model.LoginArgs{ID: userID})
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("invalid user id, please try again")
	}
	if err != nil {
		return model.Session{}, err
	}
	return res.Session, nil
}

func newShiftAddCommand() *cobra.Command {
	var userID, year, month, day, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			session, err := login(a, cmd, userID)
			if err != nil {
				return err
			}

			res, err := a.shifts.CreateShift(cmd.Context(), model.CreateShiftArgs{
				Session: session,
				Year:    year,
				Month:   month,
				Day:     day,
				Start:   start,
				End:     end,
			})
			if err != nil {
				return err
			}

			shift := res.Shift
			fmt.Printf("Recorded %s %s-%s (%.2f hours), entry id %s.\n",
				shift.Date, shift.Start, shift.End, shift.Hours, shift.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id the shift belongs to")
	cmd.Flags().StringVar(&year, "year", "", "shift year")
	cmd.Flags().StringVar(&month, "month", "", "shift month")
	cmd.Flags().StringVar(&day, "day", "", "shift day")
	cmd.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	return cmd
}

func newShiftListCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			session, err := login(a, cmd, userID)
			if err != nil {
				return err
			}

			res, err := a.shifts.ListShifts(cmd.Context(), model.ListShiftsArgs{Session: session})
			if err != nil {
				return err
			}

			if len(res.Shifts) == 0 {
				fmt.Println("No shifts recorded.")
				return nil
			}

			fmt.Printf("%-12s %-7s %-7s %-8s %s\n", "Date", "Start", "End", "Hours", "Entry id")
			for _, shift := range res.Shifts {
				fmt.Printf("%-12s %-7s %-7s %-8.2f %s\n",
					shift.Date, shift.Start, shift.End, shift.Hours, shift.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to list shifts for")
	return cmd
}

func newShiftDeleteCommand() *cobra.Command {
	var userID, entryID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a recorded shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			session, err := login(a, cmd, userID)
			if err != nil {
				return err
			}

			id, err := uuid.Parse(entryID)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", entryID)
			}

			err = a.shifts.DeleteShift(cmd.Context(), model.DeleteShiftArgs{Session: session, ID: id})
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("no shift with entry id %s", entryID)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Deleted entry %s.\n", entryID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id the shift belongs to")
	cmd.Flags().StringVarP(&entryID, "entry", "e", "", "entry id of the shift to delete")
	return cmd
}
