package ports

import "github.com/dlyog/dl-creator-cli/internal/domain"

type Navigator interface {
	Navigate(route domain.Route)
}

type NavigatorFunc func(route domain.Route)

func (f NavigatorFunc) Navigate(route domain.Route) {
	f(route)
}
