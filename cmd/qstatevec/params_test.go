package main

import "testing"

func TestParseParamsValidation(t *testing.T) {
	if params := parseParams("pi/2"); params == nil || len(params) != 1 {
		t.Errorf("parseParams('pi/2') should return 1 param, got %v", params)
	}

	if params := parseParams("pi/2,pi/4"); params == nil || len(params) != 2 {
		t.Errorf("parseParams('pi/2,pi/4') should return 2 params, got %v", params)
	}

	if params := parseParams("1.5"); params == nil || len(params) != 1 {
		t.Errorf("parseParams('1.5') should return 1 param, got %v", params)
	}

	if params := parseParams("abc"); params != nil {
		t.Errorf("parseParams('abc') should return nil, got %v", params)
	}

	if params := parseParams("pi/2,garbage"); params != nil {
		t.Errorf("parseParams('pi/2,garbage') should return nil, got %v", params)
	}

	if params := parseParams(""); params != nil {
		t.Errorf("parseParams('') should return nil, got %v", params)
	}
}
