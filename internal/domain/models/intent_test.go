package models

import "testing"

func validHotelIntent() BookingIntent {
	return BookingIntent{
		Kind:        KindHotelStay,
		TargetID:    3,
		CheckIn:     "2024-12-15",
		CheckOut:    "2024-12-18",
		Guests:      2,
		Rooms:       1,
		TotalAmount: 540.00,
		Customer:    Customer{Name: "Budi", Phone: "0812000111", Email: "budi@example.com"},
		UserID:      7,
	}
}

func TestIntentMetadataRoundTrip(t *testing.T) {
	in := validHotelIntent()

	raw, err := EncodeIntentMetadata(in)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	out, err := DecodeIntentMetadata(raw)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if out != in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	if _, err := DecodeIntentMetadata([]byte(`{"v":2,"intent":{"kind":"HOTEL_STAY","target_id":1}}`)); err == nil {
		t.Fatalf("unknown version accepted")
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	if _, err := DecodeIntentMetadata([]byte(`{"v":1,"intent":{"kind":"CRUISE","target_id":1}}`)); err == nil {
		t.Fatalf("unknown kind accepted")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "null", "not-json", `{"v":1}`} {
		if _, err := DecodeIntentMetadata([]byte(raw)); err == nil {
			t.Fatalf("garbage %q accepted", raw)
		}
	}
}

func TestValidateHotelIntent(t *testing.T) {
	in := validHotelIntent()
	if err := in.Validate(); err != nil {
		t.Fatalf("valid intent rejected: %v", err)
	}

	same := validHotelIntent()
	same.CheckOut = same.CheckIn
	if err := same.Validate(); err == nil {
		t.Fatalf("check_out == check_in accepted")
	}

	noRooms := validHotelIntent()
	noRooms.Rooms = 0
	if err := noRooms.Validate(); err == nil {
		t.Fatalf("hotel intent without rooms accepted")
	}
}

func TestValidateAttractionIntent(t *testing.T) {
	in := BookingIntent{
		Kind:        KindAttractionVisit,
		TargetID:    5,
		VisitDate:   "2024-12-20",
		Guests:      4,
		TotalAmount: 120.00,
		Customer:    Customer{Name: "Sari", Phone: "0813", Email: "sari@example.com"},
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("valid intent rejected: %v", err)
	}

	in.VisitDate = ""
	if err := in.Validate(); err == nil {
		t.Fatalf("attraction intent without visit date accepted")
	}
}
