package gtfs

import (
	"strconv"

	"github.com/fkmjec/prahadlo/internal/calendar"
	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/txerr"
)

func parseIntField(s, field string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, txerr.Wrapf(txerr.MalformedNumber, err, "parsing %s %q", field, s)
	}
	return n, nil
}

func parseBoolField(s, field string) (bool, error) {
	switch s {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, txerr.Newf(txerr.MalformedBool, "invalid %s %q: expected 0 or 1", field, s)
	}
}

func stopFromRow(r stopRow) (models.Stop, error) {
	lat, err := strconv.ParseFloat(r.StopLat, 64)
	if err != nil {
		return models.Stop{}, txerr.Wrapf(txerr.MalformedNumber, err, "parsing stop_lat for %s", r.StopID)
	}
	lon, err := strconv.ParseFloat(r.StopLon, 64)
	if err != nil {
		return models.Stop{}, txerr.Wrapf(txerr.MalformedNumber, err, "parsing stop_lon for %s", r.StopID)
	}
	locType, err := parseIntField(r.LocationType, "location_type")
	if err != nil {
		return models.Stop{}, err
	}

	return models.Stop{
		StopID:             r.StopID,
		Name:               r.StopName,
		Lat:                lat,
		Lon:                lon,
		LocationType:       locType,
		ParentStation:      r.ParentStation,
		ZoneID:             r.ZoneID,
		URL:                r.StopURL,
		WheelchairBoarding: r.WheelchairBoarding,
		LevelID:            r.LevelID,
		PlatformCode:       r.PlatformCode,
	}, nil
}

func routeFromRow(r routeRow) (models.Route, error) {
	routeType, err := parseIntField(r.RouteType, "route_type")
	if err != nil {
		return models.Route{}, err
	}
	isNight, err := parseBoolField(r.IsNight, "is_night")
	if err != nil {
		return models.Route{}, err
	}
	return models.Route{
		RouteID:   r.RouteID,
		AgencyID:  r.AgencyID,
		ShortName: r.RouteShort,
		LongName:  r.RouteLong,
		RouteType: routeType,
		IsNight:   isNight,
		URL:       r.RouteURL,
		Color:     r.RouteColor,
		TextColor: r.RouteTextCol,
	}, nil
}

func tripFromRow(r tripRow) (models.Trip, error) {
	direction, err := parseIntField(r.DirectionID, "direction_id")
	if err != nil {
		return models.Trip{}, err
	}
	return models.Trip{
		TripID:    r.TripID,
		RouteID:   r.RouteID,
		ServiceID: r.ServiceID,
		Headsign:  r.TripHeadsign,
		Direction: direction,
		ShapeID:   r.ShapeID,
	}, nil
}

func stopTimeFromRow(r stopTimeRow) (models.StopTime, error) {
	arrival, err := calendar.ParseTime(r.ArrivalTime)
	if err != nil {
		return models.StopTime{}, err
	}
	departure, err := calendar.ParseTime(r.DepartureTime)
	if err != nil {
		return models.StopTime{}, err
	}
	seq, err := strconv.Atoi(r.StopSequence)
	if err != nil {
		return models.StopTime{}, txerr.Wrapf(txerr.MalformedNumber, err, "parsing stop_sequence for trip %s", r.TripID)
	}
	pickup, err := parseIntField(r.PickupType, "pickup_type")
	if err != nil {
		return models.StopTime{}, err
	}
	dropOff, err := parseIntField(r.DropOffType, "drop_off_type")
	if err != nil {
		return models.StopTime{}, err
	}

	return models.StopTime{
		TripID:        r.TripID,
		StopSequence:  seq,
		ArrivalTime:   arrival,
		DepartureTime: departure,
		StopID:        r.StopID,
		PickupType:    pickup,
		DropOffType:   dropOff,
		StopHeadsign:  r.StopHeadsign,
	}, nil
}

func serviceFromRow(r calendarRow) (models.Service, error) {
	start, err := calendar.ParseDate(r.StartDate)
	if err != nil {
		return models.Service{}, err
	}
	end, err := calendar.ParseDate(r.EndDate)
	if err != nil {
		return models.Service{}, err
	}
	if start > end {
		return models.Service{}, txerr.Newf(txerr.MalformedDate, "service %s: start_date after end_date", r.ServiceID)
	}

	var svc models.Service
	svc.ServiceID = r.ServiceID
	svc.StartDate = start
	svc.EndDate = end

	days := []struct {
		idx int
		val string
	}{
		{0, r.Sunday}, {1, r.Monday}, {2, r.Tuesday}, {3, r.Wednesday},
		{4, r.Thursday}, {5, r.Friday}, {6, r.Saturday},
	}
	for _, d := range days {
		flag, err := parseBoolField(d.val, "weekday flag")
		if err != nil {
			return models.Service{}, err
		}
		svc.Weekday[d.idx] = flag
	}

	return svc, nil
}

func exceptionFromRow(r calendarDateRow) (models.ServiceException, error) {
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return models.ServiceException{}, err
	}
	n, err := strconv.Atoi(r.ExceptionType)
	if err != nil {
		return models.ServiceException{}, txerr.Wrapf(txerr.MalformedNumber, err, "parsing exception_type for service %s", r.ServiceID)
	}
	if n != int(models.ExceptionAdded) && n != int(models.ExceptionRemoved) {
		return models.ServiceException{}, txerr.Newf(txerr.MalformedNumber, "invalid exception_type %d for service %s", n, r.ServiceID)
	}
	return models.ServiceException{
		ServiceID:     r.ServiceID,
		Date:          date,
		ExceptionType: models.ExceptionType(n),
	}, nil
}
