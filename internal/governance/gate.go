package governance

import "fmt"

// mutation carries the transaction of one governance call. Preconditions and
// operation bodies both run against it.
type mutation struct {
	tx     Tx
	state  *State
	events []Event
}

// precondition is one layer of the authorization gate. Checks run in the
// order they are listed and the first failure aborts the call.
type precondition func(m *mutation) error

func requireOperational() precondition {
	return func(m *mutation) error {
		if !m.state.Operational {
			return ErrNotOperational
		}
		return nil
	}
}

func requireOwner(caller Address) precondition {
	return func(m *mutation) error {
		if caller != m.state.Owner {
			return fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, caller)
		}
		return nil
	}
}

// requireAuthorizedCaller admits the owner and any delegate on the allow-list.
func requireAuthorizedCaller(caller Address) precondition {
	return func(m *mutation) error {
		if caller == m.state.Owner {
			return nil
		}
		ok, err := m.tx.IsAuthorized(caller)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s is not an authorized caller", ErrUnauthorized, caller)
		}
		return nil
	}
}

// requireEligibleAirline admits registered and funded airlines. The owner is
// the consortium's founding voter and is always eligible.
func requireEligibleAirline(caller Address) precondition {
	return func(m *mutation) error {
		if caller == m.state.Owner {
			return nil
		}
		airline, err := m.tx.Airline(caller)
		if err != nil {
			return err
		}
		if !airline.Registered || !airline.Funded {
			return fmt.Errorf("%w: %s", ErrCallerNotEligible, caller)
		}
		return nil
	}
}

func requireUnregistered(candidate Address) precondition {
	return func(m *mutation) error {
		airline, err := m.tx.Airline(candidate)
		if err != nil {
			return err
		}
		if airline.Registered {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, candidate)
		}
		return nil
	}
}
