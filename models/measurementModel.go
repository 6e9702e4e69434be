package models

// Measurement is the fixed-field measurement set of an order.
type Measurement struct {
	ID      int64   `db:"measurement_id"`
	OrderID int64   `db:"order_id"`
	L       *string `db:"L"`
	SH      *string `db:"SH"`
	ARM     *string `db:"ARM"`
	UB      *string `db:"UB"`
	MB      *string `db:"MB"`
	W       *string `db:"W"`
	POINT   *string `db:"POINT"`
	FN      *string `db:"FN"`
	BN      *string `db:"BN"`
	HIP     *string `db:"HIP"`
	SEAT    *string `db:"SEAT"`
	THIGH   *string `db:"THIGH"`
}

type SleeveMeasurement struct {
	ID            int64   `db:"sl_id"`
	MeasurementID int64   `db:"measurement_id"`
	Position      int     `db:"position"`
	L             *string `db:"L"`
	W             *string `db:"W"`
	A             *string `db:"A"`
}

type CustomMeasurement struct {
	ID            int64  `db:"custom_id"`
	MeasurementID int64  `db:"measurement_id"`
	Name          string `db:"name"`
	Value         string `db:"value"`
}

type SleeveInput struct {
	Position int         `json:"-"`
	L        *FlexString `json:"L"`
	W        *FlexString `json:"W"`
	A        *FlexString `json:"A"`
}

type CustomMeasurementInput struct {
	Name  FlexString `json:"name"`
	Value FlexString `json:"value"`
}

// MeasurementInput is the optional measurements block of an order payload.
type MeasurementInput struct {
	L      *FlexString              `json:"L"`
	SH     *FlexString              `json:"SH"`
	ARM    *FlexString              `json:"ARM"`
	UB     *FlexString              `json:"UB"`
	MB     *FlexString              `json:"MB"`
	W      *FlexString              `json:"W"`
	POINT  *FlexString              `json:"POINT"`
	FN     *FlexString              `json:"FN"`
	BN     *FlexString              `json:"BN"`
	HIP    *FlexString              `json:"HIP"`
	SEAT   *FlexString              `json:"SEAT"`
	THIGH  *FlexString              `json:"THIGH"`
	SL     SleeveList               `json:"SL"`
	Others []CustomMeasurementInput `json:"others"`
}

func (m *MeasurementInput) fields() []*FlexString {
	return []*FlexString{m.L, m.SH, m.ARM, m.UB, m.MB, m.W, m.POINT, m.FN, m.BN, m.HIP, m.SEAT, m.THIGH}
}

// Empty reports whether the block carries no value at all.
func (m *MeasurementInput) Empty() bool {
	if m == nil {
		return true
	}
	for _, f := range m.fields() {
		if f != nil && *f != "" {
			return false
		}
	}
	for _, sl := range m.SL {
		if !sl.empty() {
			return false
		}
	}
	for _, o := range m.Others {
		if o.Name != "" {
			return false
		}
	}
	return true
}

func (s SleeveInput) empty() bool {
	for _, f := range []*FlexString{s.L, s.W, s.A} {
		if f != nil && *f != "" {
			return false
		}
	}
	return true
}

func (m *MeasurementInput) Measurement(orderID int64) Measurement {
	return Measurement{
		OrderID: orderID,
		L:       textPtr(m.L),
		SH:      textPtr(m.SH),
		ARM:     textPtr(m.ARM),
		UB:      textPtr(m.UB),
		MB:      textPtr(m.MB),
		W:       textPtr(m.W),
		POINT:   textPtr(m.POINT),
		FN:      textPtr(m.FN),
		BN:      textPtr(m.BN),
		HIP:     textPtr(m.HIP),
		SEAT:    textPtr(m.SEAT),
		THIGH:   textPtr(m.THIGH),
	}
}

func (s SleeveInput) Sleeve(measurementID int64) SleeveMeasurement {
	return SleeveMeasurement{
		MeasurementID: measurementID,
		Position:      s.Position,
		L:             textPtr(s.L),
		W:             textPtr(s.W),
		A:             textPtr(s.A),
	}
}

// MeasurementView is the measurements block of the nested order shape.
type MeasurementView struct {
	L      *string                 `json:"L"`
	SH     *string                 `json:"SH"`
	ARM    *string                 `json:"ARM"`
	UB     *string                 `json:"UB"`
	MB     *string                 `json:"MB"`
	W      *string                 `json:"W"`
	POINT  *string                 `json:"POINT"`
	FN     *string                 `json:"FN"`
	BN     *string                 `json:"BN"`
	HIP    *string                 `json:"HIP"`
	SEAT   *string                 `json:"SEAT"`
	THIGH  *string                 `json:"THIGH"`
	SL     []SleeveView            `json:"SL"`
	Others []CustomMeasurementView `json:"others"`
}

type SleeveView struct {
	Position int     `json:"position"`
	L        *string `json:"L"`
	W        *string `json:"W"`
	A        *string `json:"A"`
}

type CustomMeasurementView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewMeasurementView(m Measurement, sleeves []SleeveMeasurement, custom []CustomMeasurement) *MeasurementView {
	v := &MeasurementView{
		L: m.L, SH: m.SH, ARM: m.ARM, UB: m.UB, MB: m.MB, W: m.W,
		POINT: m.POINT, FN: m.FN, BN: m.BN, HIP: m.HIP, SEAT: m.SEAT, THIGH: m.THIGH,
		SL:     make([]SleeveView, 0, len(sleeves)),
		Others: make([]CustomMeasurementView, 0, len(custom)),
	}
	for _, s := range sleeves {
		v.SL = append(v.SL, SleeveView{Position: s.Position, L: s.L, W: s.W, A: s.A})
	}
	for _, c := range custom {
		v.Others = append(v.Others, CustomMeasurementView{Name: c.Name, Value: c.Value})
	}
	return v
}

func (c CustomMeasurementInput) Custom(measurementID int64) CustomMeasurement {
	return CustomMeasurement{MeasurementID: measurementID, Name: string(c.Name), Value: string(c.Value)}
}
